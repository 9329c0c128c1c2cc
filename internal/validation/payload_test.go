package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitego/snipcart-webhook-app/internal/models"
	"github.com/bitego/snipcart-webhook-app/internal/validation"
	"github.com/bitego/snipcart-webhook-app/internal/webhook/event"
)

func TestPayloadValidator_Validate(t *testing.T) {
	testCases := []struct {
		Name          string
		Body          string
		ExpectedEvent event.Type
		ExpectedMode  models.Mode
		ExpectError   bool
	}{
		{
			Name:        "not_json",
			Body:        "not json at all",
			ExpectError: true,
		},
		{
			Name:        "json_array",
			Body:        `[1, 2, 3]`,
			ExpectError: true,
		},
		{
			Name:        "missing_event_name",
			Body:        `{"mode": "Live", "content": {}}`,
			ExpectError: true,
		},
		{
			Name:        "unknown_event_name",
			Body:        `{"eventName": "order.exploded", "mode": "Live", "content": {}}`,
			ExpectError: true,
		},
		{
			Name:        "event_name_not_a_string",
			Body:        `{"eventName": 42, "mode": "Live", "content": {}}`,
			ExpectError: true,
		},
		{
			Name:        "missing_mode",
			Body:        `{"eventName": "order.completed", "content": {}}`,
			ExpectError: true,
		},
		{
			Name:        "invalid_mode",
			Body:        `{"eventName": "order.completed", "mode": "live", "content": {}}`,
			ExpectError: true,
		},
		{
			Name:        "missing_content",
			Body:        `{"eventName": "order.completed", "mode": "Live"}`,
			ExpectError: true,
		},
		{
			Name:          "valid_live",
			Body:          `{"eventName": "order.completed", "mode": "Live", "content": {"token": "abc"}}`,
			ExpectedEvent: event.OrderCompleted,
			ExpectedMode:  models.ModeLive,
		},
		{
			Name:          "valid_test_mode",
			Body:          `{"eventName": "taxes.calculate", "mode": "Test", "content": {}}`,
			ExpectedEvent: event.TaxesCalculate,
			ExpectedMode:  models.ModeTest,
		},
	}

	_inst := validation.NewPayloadValidator()
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			evt, payload, err := _inst.Validate([]byte(tc.Body))
			if tc.ExpectError {
				assert.Error(t, err)
				var schemaErr *validation.SchemaError
				assert.ErrorAs(t, err, &schemaErr)
				assert.Nil(t, payload)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.ExpectedEvent, evt)
			assert.Equal(t, string(tc.ExpectedEvent), payload.EventName)
			assert.Equal(t, tc.ExpectedMode, payload.Mode)
			assert.NotNil(t, payload.Content)
		})
	}
}

func TestPayloadValidator_AllKnownEvents(t *testing.T) {
	_inst := validation.NewPayloadValidator()
	for _, kind := range event.Known() {
		t.Run(string(kind), func(t *testing.T) {
			body := `{"eventName": "` + string(kind) + `", "mode": "Live", "content": {}}`
			evt, _, err := _inst.Validate([]byte(body))
			assert.NoError(t, err)
			assert.Equal(t, kind, evt)
		})
	}
}
