// Package runtime adapts the webhook processing pipeline to the HTTP server.
package runtime

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bitego/snipcart-webhook-app/internal/handler"
	"github.com/bitego/snipcart-webhook-app/internal/helpers"
	"github.com/bitego/snipcart-webhook-app/internal/models"
)

// Option is a function that applies an option to a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger instance for the runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// Runtime wraps a webhook handler behind net/http.
type Runtime struct {
	*handler.Handler
	logger *slog.Logger
}

// NewRuntime creates a new runtime instance.
func NewRuntime(handler *handler.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{Handler: handler}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return _inst
}

// ServeHTTP is the HTTP handler for the runtime. Method and content-type
// policy belong to the pipeline's authenticator, so every request is passed
// through regardless of verb.
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	r.logger.Debug("received HTTP request...",
		slog.Any("requestor", req.RemoteAddr),
		slog.Any("method", req.Method),
		slog.Any("path", req.URL.Path))

	headers := make(map[string]string)
	for k, v := range req.Header {
		headers[strings.ToLower(k)] = v[0]
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, resp)
		return
	}

	result, _ := r.Handler.Process(models.Request{
		Method:  req.Method,
		Body:    body,
		Headers: headers,
	})
	helpers.RespondHTTP(result, resp)
}
