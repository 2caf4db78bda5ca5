package inference

import (
	"context"
	"errors"

	"github.com/crestline-labs/supportdesk/internal/chat"
)

// Disabled is the inference client used when no provider credential is
// configured. Complete always fails, and the chat orchestrator turns the
// failure into its inference-down reply, so the server stays up with chat
// completions switched off.
type Disabled struct {
	err error
}

func NewDisabled() *Disabled {
	return &Disabled{
		err: &Error{
			Reason: ReasonUnknown,
			Err:    errors.New("chat inference not configured: HF_API_KEY or OPENAI_API_KEY required"),
		},
	}
}

func (d *Disabled) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	return "", d.err
}
