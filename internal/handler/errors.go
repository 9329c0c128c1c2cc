package handler

import "fmt"

// UnboundHandlerError marks a recognized event kind with no registered
// handler. It is an internal inconsistency, never expected when the default
// routes are in place.
type UnboundHandlerError struct {
	Event string
}

func (e *UnboundHandlerError) Error() string {
	return fmt.Sprintf("no handler bound for event: %s", e.Event)
}
