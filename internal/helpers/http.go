package helpers

import (
	"net/http"

	"github.com/bitego/snipcart-webhook-app/internal/models"
)

// RespondHTTP writes a pipeline response to the wire. Every response carries
// cache-defeating headers so intermediaries never replay a webhook reply.
func RespondHTTP(response models.Response, rw http.ResponseWriter) {
	rw.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	rw.Header().Set("Pragma", "no-cache")
	if response.Body != "" {
		rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}

	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.WriteHeader(statusCode)
	if response.Body != "" {
		_, _ = rw.Write([]byte(response.Body))
	}
}
