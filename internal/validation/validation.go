// Package validation provides functionality for verifying webhook request authenticity and payload schema.
package validation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bitego/snipcart-webhook-app/internal/helpers"
	"github.com/bitego/snipcart-webhook-app/internal/snipcart"
)

const (
	// TokenHeader carries the Snipcart request token to corroborate.
	TokenHeader = "X-Snipcart-RequestToken"
	// MethodOverrideHeader tolerates proxies that rewrite the request verb.
	MethodOverrideHeader = "X-HTTP-Method-Override"
)

// AuthenticationError marks a request that failed the authenticity checks.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// Option is a function that applies an option to a RequestAuthenticator.
type Option func(*RequestAuthenticator)

// WithLogger sets the logger instance for the authenticator.
func WithLogger(logger *slog.Logger) Option {
	return func(a *RequestAuthenticator) {
		a.logger = logger
	}
}

// WithLocalDevelopment skips the token handshake. The request is then trusted
// on its headers alone; a development convenience, not a security guarantee.
func WithLocalDevelopment(enabled bool) Option {
	return func(a *RequestAuthenticator) {
		a.localDev = enabled
	}
}

// RequestAuthenticator validates the transport-level authenticity of an
// inbound webhook call: method, content type, and the request token, which is
// corroborated through a synchronous handshake against the Snipcart API.
type RequestAuthenticator struct {
	logger   *slog.Logger
	client   *snipcart.Client
	localDev bool
}

// NewRequestAuthenticator creates an authenticator backed by the given Snipcart client.
func NewRequestAuthenticator(client *snipcart.Client, opts ...Option) *RequestAuthenticator {
	_inst := &RequestAuthenticator{client: client, logger: helpers.NewNoopLogger()}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

// Authenticate checks the request headers and performs the token handshake.
// Headers are expected with lower-cased keys. Every failure, including a
// handshake timeout, rejects the request; the pipeline never fails open.
func (a *RequestAuthenticator) Authenticate(ctx context.Context, method string, headers map[string]string) error {
	if method != "POST" && headers[strings.ToLower(MethodOverrideHeader)] != "POST" {
		a.logger.Warn("rejecting request with invalid method", slog.String("method", method))
		return &AuthenticationError{Reason: fmt.Sprintf("invalid method: %s", method)}
	}

	contentType := headers["content-type"]
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		a.logger.Warn("rejecting request with unsupported content type", slog.String("contentType", contentType))
		return &AuthenticationError{Reason: fmt.Sprintf("unsupported content type: %s", contentType)}
	}

	token, found := headers[strings.ToLower(TokenHeader)]
	if !found || token == "" {
		a.logger.Warn("rejecting request without a request token")
		return &AuthenticationError{Reason: "missing request token"}
	}

	if a.localDev {
		a.logger.Debug("local development mode, skipping token handshake")
		return nil
	}

	if err := a.client.ValidateToken(ctx, token); err != nil {
		a.logger.Warn("token handshake failed", slog.Any("error", err), slog.String("token", helpers.Truncate(token, 16)))
		return &AuthenticationError{Reason: err.Error()}
	}
	a.logger.Debug("request token corroborated")
	return nil
}
