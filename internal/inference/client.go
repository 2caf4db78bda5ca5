package inference

import (
	"context"
	"fmt"

	"github.com/crestline-labs/supportdesk/internal/chat"
)

// ErrorReason classifies why an inference call failed.
type ErrorReason string

const (
	ReasonTimeout           ErrorReason = "timeout"
	ReasonUpstreamStatus    ErrorReason = "upstream_status"
	ReasonMalformedResponse ErrorReason = "malformed_response"
	ReasonUnknown           ErrorReason = "unknown"
)

// Error is returned when an upstream inference call fails. Clients make a
// single attempt per invocation and never retry on their own.
type Error struct {
	Reason ErrorReason
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("inference %s (status %d): %v", e.Reason, e.Status, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("inference %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("inference %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client generates a completion for an assembled prompt. Both the Hugging
// Face and the OpenAI-compatible backends satisfy it, and it matches the
// chat orchestrator's Completer contract.
type Client interface {
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}
