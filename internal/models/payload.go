package models

import "encoding/json"

// Mode identifies the Snipcart environment that emitted a webhook payload.
type Mode string

const (
	// ModeLive marks payloads emitted by a production store.
	ModeLive Mode = "Live"
	// ModeTest marks payloads emitted by a store running in test mode.
	ModeTest Mode = "Test"
)

// Payload is the envelope common to every Snipcart webhook event. Content is
// event-specific and only inspected deeply by the tax calculation handler.
type Payload struct {
	EventName string          `json:"eventName"`
	Mode      Mode            `json:"mode"`
	Content   json.RawMessage `json:"content"`
}
