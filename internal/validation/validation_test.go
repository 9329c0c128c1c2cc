package validation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitego/snipcart-webhook-app/internal/snipcart"
	"github.com/bitego/snipcart-webhook-app/internal/validation"
)

func TestRequestAuthenticator_Authenticate(t *testing.T) {
	var handshakes atomic.Int64
	validationServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handshakes.Add(1)
		token := strings.TrimPrefix(r.URL.Path, "/requestvalidation/")
		if token == "genuine" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token": "genuine"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer validationServer.Close()

	client := snipcart.NewClient(snipcart.WithAPIBase(validationServer.URL))

	testCases := []struct {
		Name              string
		Method            string
		Headers           map[string]string
		LocalDev          bool
		ExpectError       bool
		ExpectedHandshake bool
	}{
		{
			Name:        "invalid_method",
			Method:      "GET",
			Headers:     map[string]string{"content-type": "application/json"},
			ExpectError: true,
		},
		{
			Name:   "method_override",
			Method: "PUT",
			Headers: map[string]string{
				"x-http-method-override":  "POST",
				"content-type":            "application/json",
				"x-snipcart-requesttoken": "genuine",
			},
			ExpectedHandshake: true,
		},
		{
			Name:        "invalid_content_type",
			Method:      "POST",
			Headers:     map[string]string{"content-type": "application/xml"},
			ExpectError: true,
		},
		{
			Name:   "content_type_with_charset",
			Method: "POST",
			Headers: map[string]string{
				"content-type":            "Application/JSON; charset=utf-8",
				"x-snipcart-requesttoken": "genuine",
			},
			ExpectedHandshake: true,
		},
		{
			Name:        "missing_token",
			Method:      "POST",
			Headers:     map[string]string{"content-type": "application/json"},
			ExpectError: true,
		},
		{
			Name:   "fabricated_token",
			Method: "POST",
			Headers: map[string]string{
				"content-type":            "application/json",
				"x-snipcart-requesttoken": "fabricated",
			},
			ExpectError:       true,
			ExpectedHandshake: true,
		},
		{
			Name:   "genuine_token",
			Method: "POST",
			Headers: map[string]string{
				"content-type":            "application/json",
				"x-snipcart-requesttoken": "genuine",
			},
			ExpectedHandshake: true,
		},
		{
			Name:   "local_development_skips_handshake",
			Method: "POST",
			Headers: map[string]string{
				"content-type":            "application/json",
				"x-snipcart-requesttoken": "anything-goes",
			},
			LocalDev: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			before := handshakes.Load()
			_inst := validation.NewRequestAuthenticator(client, validation.WithLocalDevelopment(tc.LocalDev))
			err := _inst.Authenticate(context.Background(), tc.Method, tc.Headers)
			if tc.ExpectError {
				assert.Error(t, err)
				var authErr *validation.AuthenticationError
				assert.ErrorAs(t, err, &authErr)
			} else {
				assert.NoError(t, err)
			}
			performed := handshakes.Load() > before
			assert.Equal(t, tc.ExpectedHandshake, performed, "handshake call expectation")
		})
	}
}

func TestRequestAuthenticator_FailsClosed(t *testing.T) {
	// An unreachable validation endpoint must reject, never accept.
	client := snipcart.NewClient(snipcart.WithAPIBase("http://127.0.0.1:1"))
	_inst := validation.NewRequestAuthenticator(client)

	err := _inst.Authenticate(context.Background(), "POST", map[string]string{
		"content-type":            "application/json",
		"x-snipcart-requesttoken": "genuine",
	})
	assert.Error(t, err)
	var authErr *validation.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}
