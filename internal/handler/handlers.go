package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/bitego/snipcart-webhook-app/internal/metrics"
	"github.com/bitego/snipcart-webhook-app/internal/models"
	"github.com/bitego/snipcart-webhook-app/internal/taxes"
	"github.com/bitego/snipcart-webhook-app/internal/webhook/event"
)

// defaultRoutes binds every known event kind to a handler. All events are
// acknowledged with the original payload except taxes.calculate, which runs
// the tax engine.
func (h *Handler) defaultRoutes() map[event.Type]HandlerFunc {
	routes := make(map[event.Type]HandlerFunc, len(event.Known()))
	for _, t := range event.Known() {
		routes[t] = h.acknowledge
	}
	routes[event.TaxesCalculate] = h.calculateTaxes
	return routes
}

// acknowledge echoes the original payload back with 202 Accepted. Snipcart
// only requires delivery confirmation for these events; any real work is done
// by registered observers.
func (h *Handler) acknowledge(_ context.Context, payload *models.Payload) (models.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Response{StatusCode: http.StatusInternalServerError}, errors.Wrap(err, "failed to marshal payload")
	}
	return models.Response{Body: string(body), StatusCode: http.StatusAccepted}, nil
}

type taxesResponse struct {
	Taxes []taxes.LineItem `json:"taxes"`
}

// calculateTaxes runs the tax engine over the payload content. When the store
// uses an external tax provider the handler answers 204 without evaluating
// the content at all.
func (h *Handler) calculateTaxes(_ context.Context, payload *models.Payload) (models.Response, error) {
	if h.taxProvider != TaxProviderIntegrated {
		metrics.TaxCalculations.WithLabelValues("provider_disabled").Inc()
		return models.Response{StatusCode: http.StatusNoContent}, nil
	}

	lines, err := h.taxEngine.Calculate(payload.Content)
	if err != nil {
		metrics.TaxCalculations.WithLabelValues("rejected").Inc()
		return models.Response{StatusCode: http.StatusBadRequest}, err
	}

	body, err := json.Marshal(taxesResponse{Taxes: lines})
	if err != nil {
		return models.Response{StatusCode: http.StatusInternalServerError}, errors.Wrap(err, "failed to marshal tax line items")
	}
	metrics.TaxCalculations.WithLabelValues("computed").Inc()
	return models.Response{Body: string(body), StatusCode: http.StatusAccepted}, nil
}
