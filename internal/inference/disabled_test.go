package inference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/supportdesk/internal/chat"
)

func TestDisabled_Complete(t *testing.T) {
	c := NewDisabled()

	reply, err := c.Complete(context.Background(), []chat.Message{
		{Role: chat.RoleUser, Content: "hi"},
	})

	assert.Empty(t, reply)
	var infErr *Error
	require.ErrorAs(t, err, &infErr)
	assert.Equal(t, ReasonUnknown, infErr.Reason)
	assert.Contains(t, err.Error(), "not configured")
}
