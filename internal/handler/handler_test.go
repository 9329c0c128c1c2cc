package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitego/snipcart-webhook-app/internal/handler"
	"github.com/bitego/snipcart-webhook-app/internal/models"
	"github.com/bitego/snipcart-webhook-app/internal/taxes"
	"github.com/bitego/snipcart-webhook-app/internal/webhook/event"
)

var testJSONHeaders = map[string]string{
	"content-type":            "application/json",
	"x-snipcart-requesttoken": "local-token",
}

// newLocalHandler builds a handler in local development mode so tests never
// reach out to the Snipcart API.
func newLocalHandler(t *testing.T, options ...handler.Option) *handler.Handler {
	t.Helper()
	options = append([]handler.Option{handler.WithLocalDevelopment(true)}, options...)
	h, err := handler.NewWebhookHandler(options...)
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return h
}

func payloadFor(kind event.Type, content string) []byte {
	return []byte(`{"eventName": "` + string(kind) + `", "mode": "Live", "content": ` + content + `}`)
}

func TestHandler_Process_Rejections(t *testing.T) {
	testCases := []struct {
		Name           string
		Request        models.Request
		ExpectedStatus int
	}{
		{
			Name:           "bad_method",
			Request:        models.Request{Method: "GET", Headers: testJSONHeaders},
			ExpectedStatus: http.StatusNotFound,
		},
		{
			Name: "missing_token",
			Request: models.Request{
				Method:  "POST",
				Headers: map[string]string{"content-type": "application/json"},
			},
			ExpectedStatus: http.StatusNotFound,
		},
		{
			Name: "invalid_payload",
			Request: models.Request{
				Method:  "POST",
				Headers: testJSONHeaders,
				Body:    []byte(`{"eventName": "order.exploded", "mode": "Live", "content": {}}`),
			},
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name: "missing_mode",
			Request: models.Request{
				Method:  "POST",
				Headers: testJSONHeaders,
				Body:    []byte(`{"eventName": "order.completed", "content": {}}`),
			},
			ExpectedStatus: http.StatusBadRequest,
		},
	}

	h := newLocalHandler(t)
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			response, err := h.Process(tc.Request)
			assert.Error(t, err)
			assert.Equal(t, tc.ExpectedStatus, response.StatusCode)
			assert.Empty(t, response.Body)
		})
	}
}

func TestHandler_Process_AcknowledgedEvents(t *testing.T) {
	h := newLocalHandler(t)
	for _, kind := range event.Known() {
		if kind == event.TaxesCalculate {
			continue
		}
		t.Run(string(kind), func(t *testing.T) {
			body := payloadFor(kind, `{"orderToken": "abc"}`)
			response, err := h.Process(models.Request{Method: "POST", Headers: testJSONHeaders, Body: body})
			assert.NoError(t, err)
			assert.Equal(t, http.StatusAccepted, response.StatusCode)

			// The response echoes the original payload.
			var echoed models.Payload
			assert.NoError(t, json.Unmarshal([]byte(response.Body), &echoed))
			assert.Equal(t, string(kind), echoed.EventName)
			assert.JSONEq(t, `{"orderToken": "abc"}`, string(echoed.Content))
		})
	}
}

func TestHandler_Process_TaxCalculation(t *testing.T) {
	definitions := taxes.Definitions{
		{Name: "19% MwSt.", Rate: 0.19, NumberForInvoice: "DE-19"},
	}
	content := `{
		"items": [{"taxable": true, "taxes": ["19% MwSt."], "totalPriceWithoutTaxes": 100}],
		"shippingInformation": {"fees": 0, "method": "Standard"},
		"itemsTotal": 100,
		"currency": "eur"
	}`

	t.Run("computed", func(t *testing.T) {
		h := newLocalHandler(t, handler.WithTaxEngine(taxes.NewEngine(definitions)))
		response, err := h.Process(models.Request{
			Method:  "POST",
			Headers: testJSONHeaders,
			Body:    payloadFor(event.TaxesCalculate, content),
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, response.StatusCode)
		assert.JSONEq(t, `{"taxes": [
			{"name": "+ 19% MwSt.", "amount": 19, "rate": 0.19, "numberForInvoice": "DE-19", "includedInPrice": false}
		]}`, response.Body)
	})

	t.Run("empty_cart", func(t *testing.T) {
		h := newLocalHandler(t, handler.WithTaxEngine(taxes.NewEngine(definitions)))
		response, err := h.Process(models.Request{
			Method:  "POST",
			Headers: testJSONHeaders,
			Body:    payloadFor(event.TaxesCalculate, `{"items": [{"taxable": true}], "itemsTotal": 0}`),
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, response.StatusCode)
		assert.JSONEq(t, `{"taxes": []}`, response.Body)
	})

	t.Run("bad_content", func(t *testing.T) {
		h := newLocalHandler(t, handler.WithTaxEngine(taxes.NewEngine(definitions)))
		response, err := h.Process(models.Request{
			Method:  "POST",
			Headers: testJSONHeaders,
			Body:    payloadFor(event.TaxesCalculate, `{"items": 42, "itemsTotal": 100}`),
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})

	t.Run("provider_disabled", func(t *testing.T) {
		h := newLocalHandler(t,
			handler.WithTaxEngine(taxes.NewEngine(definitions)),
			handler.WithTaxProvider("external"))
		// Content would be schema-invalid: the provider gate must short-circuit
		// before any evaluation.
		response, err := h.Process(models.Request{
			Method:  "POST",
			Headers: testJSONHeaders,
			Body:    payloadFor(event.TaxesCalculate, `"garbage"`),
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, response.StatusCode)
		assert.Empty(t, response.Body)
	})
}

func TestHandler_Process_UnboundHandler(t *testing.T) {
	h := newLocalHandler(t, handler.WithRoute(event.CustomerUpdated, nil))

	response, err := h.Process(models.Request{
		Method:  "POST",
		Headers: testJSONHeaders,
		Body:    payloadFor(event.CustomerUpdated, `{}`),
	})
	assert.Error(t, err)
	var unbound *handler.UnboundHandlerError
	assert.ErrorAs(t, err, &unbound)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
}

func TestHandler_RouteOverride(t *testing.T) {
	h := newLocalHandler(t, handler.WithRoute(event.ShippingRatesFetch,
		func(_ context.Context, _ *models.Payload) (models.Response, error) {
			return models.Response{Body: `{"rates": []}`, StatusCode: http.StatusAccepted}, nil
		}))

	response, err := h.Process(models.Request{
		Method:  "POST",
		Headers: testJSONHeaders,
		Body:    payloadFor(event.ShippingRatesFetch, `{}`),
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, response.StatusCode)
	assert.JSONEq(t, `{"rates": []}`, response.Body)
}

func TestHandler_Observers(t *testing.T) {
	h := newLocalHandler(t)

	var observedEvent event.Type
	var observedStatus int
	var observedPayload *models.Payload
	h.RegisterObserver(func(evt event.Type, payload *models.Payload, response models.Response) {
		observedEvent = evt
		observedStatus = response.StatusCode
		observedPayload = payload
	})

	response, err := h.Process(models.Request{
		Method:  "POST",
		Headers: testJSONHeaders,
		Body:    payloadFor(event.OrderCompleted, `{"invoiceNumber": "SNIP-1001"}`),
	})
	assert.NoError(t, err)

	// The observer sees the committed response, after the fact.
	assert.Equal(t, event.OrderCompleted, observedEvent)
	assert.Equal(t, response.StatusCode, observedStatus)
	if assert.NotNil(t, observedPayload) {
		assert.Equal(t, string(event.OrderCompleted), observedPayload.EventName)
	}
}
