package handler

import (
	"context"
	"log/slog"

	"github.com/bitego/snipcart-webhook-app/internal/snipcart"
	"github.com/bitego/snipcart-webhook-app/internal/taxes"
	"github.com/bitego/snipcart-webhook-app/internal/webhook/event"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithContext sets the context for the handler.
func WithContext(ctx context.Context) Option {
	return func(h *Handler) {
		h.ctx = ctx
	}
}

// WithSnipcartClient sets the Snipcart API client used for the token handshake.
func WithSnipcartClient(client *snipcart.Client) Option {
	return func(h *Handler) {
		h.snipcartClient = client
	}
}

// WithLocalDevelopment makes the authenticator skip the token handshake.
func WithLocalDevelopment(enabled bool) Option {
	return func(h *Handler) {
		h.localDev = enabled
	}
}

// WithTaxProvider sets the store's configured tax provider. The tax
// calculation handler only computes when the provider is the integrated one.
func WithTaxProvider(provider string) Option {
	return func(h *Handler) {
		h.taxProvider = provider
	}
}

// WithTaxEngine sets the tax engine backing the taxes.calculate handler.
func WithTaxEngine(engine *taxes.Engine) Option {
	return func(h *Handler) {
		h.taxEngine = engine
	}
}

// WithRoute overrides the handler bound to an event kind. A nil HandlerFunc
// unbinds the event entirely.
func WithRoute(evt event.Type, fn HandlerFunc) Option {
	return func(h *Handler) {
		if h.routeOverrides == nil {
			h.routeOverrides = make(map[event.Type]HandlerFunc)
		}
		h.routeOverrides[evt] = fn
	}
}
