package validation

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bitego/snipcart-webhook-app/internal/helpers"
	"github.com/bitego/snipcart-webhook-app/internal/models"
	"github.com/bitego/snipcart-webhook-app/internal/webhook/event"
)

// SchemaError marks a payload that failed the schema checks.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid payload: %s", e.Reason)
}

// PayloadOption is a function that applies an option to a PayloadValidator.
type PayloadOption func(*PayloadValidator)

// WithPayloadLogger sets the logger instance for the validator.
func WithPayloadLogger(logger *slog.Logger) PayloadOption {
	return func(v *PayloadValidator) {
		v.logger = logger
	}
}

// PayloadValidator parses and schema-checks the raw webhook body.
type PayloadValidator struct {
	logger *slog.Logger
}

// NewPayloadValidator creates a payload validator.
func NewPayloadValidator(opts ...PayloadOption) *PayloadValidator {
	_inst := &PayloadValidator{logger: helpers.NewNoopLogger()}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

// Validate parses the raw body and checks the webhook envelope schema. The
// first failing check determines the rejection. Only on full success are the
// typed event and payload exposed to the router.
func (v *PayloadValidator) Validate(body []byte) (event.Type, *models.Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		v.logger.Warn("payload is not a JSON object", slog.String("body", helpers.Truncate(string(body), 256)))
		return "", nil, &SchemaError{Reason: "body is not a JSON object"}
	}

	rawName, found := fields["eventName"]
	if !found {
		v.logger.Warn("payload is missing eventName")
		return "", nil, &SchemaError{Reason: "missing eventName"}
	}
	var eventName string
	if err := json.Unmarshal(rawName, &eventName); err != nil || !event.IsKnown(eventName) {
		v.logger.Warn("payload carries an unknown eventName", slog.String("eventName", string(rawName)))
		return "", nil, &SchemaError{Reason: fmt.Sprintf("unknown eventName: %s", rawName)}
	}

	rawMode, found := fields["mode"]
	if !found {
		v.logger.Warn("payload is missing mode")
		return "", nil, &SchemaError{Reason: "missing mode"}
	}
	var mode models.Mode
	if err := json.Unmarshal(rawMode, &mode); err != nil || (mode != models.ModeLive && mode != models.ModeTest) {
		v.logger.Warn("payload carries an invalid mode", slog.String("mode", string(rawMode)))
		return "", nil, &SchemaError{Reason: fmt.Sprintf("invalid mode: %s", rawMode)}
	}

	content, found := fields["content"]
	if !found {
		v.logger.Warn("payload is missing content")
		return "", nil, &SchemaError{Reason: "missing content"}
	}

	payload := &models.Payload{
		EventName: eventName,
		Mode:      mode,
		Content:   content,
	}
	v.logger.Debug("payload is valid", slog.String("event", eventName), slog.String("mode", string(mode)))
	return event.Type(eventName), payload, nil
}
