package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/supportdesk/internal/domain"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func newTestOrchestrator(completer Completer) *Orchestrator {
	store := NewStore()
	return NewOrchestrator(NewMatcher(store), NewHistory(), completer)
}

func customer(handle string) domain.Principal {
	return domain.Principal{UserID: "u-1", Handle: handle, CompanyID: "c-1", Role: domain.RoleCustomer}
}

func agent(handle string) domain.Principal {
	return domain.Principal{UserID: "u-2", Handle: handle, CompanyID: "c-1", Role: domain.RoleAgent}
}

func TestCustomerTurn_EmptyMessage(t *testing.T) {
	completer := new(mockCompleter)
	o := newTestOrchestrator(completer)

	res, err := o.CustomerTurn(context.Background(), customer("alice"), "   ")
	require.NoError(t, err)
	assert.Equal(t, "Please type a message.", res.Response)
	assert.False(t, res.Handoff)

	// No history touched, no inference call made.
	assert.Empty(t, o.History().Get("alice"))
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestCustomerTurn_GreetingShortCircuit(t *testing.T) {
	completer := new(mockCompleter)
	o := newTestOrchestrator(completer)

	res, err := o.CustomerTurn(context.Background(), customer("alice"), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello! I'm your virtual assistant. How can I help you today?", res.Response)
	assert.False(t, res.Handoff)

	history := o.History().Get("alice")
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, RoleAssistant, history[1].Role)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestCustomerTurn_NormalFlow(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("We are open 9 to 5.", nil)
	o := newTestOrchestrator(completer)

	res, err := o.CustomerTurn(context.Background(), customer("alice"), "What are your business hours?")
	require.NoError(t, err)
	assert.Equal(t, "We are open 9 to 5.", res.Response)
	assert.False(t, res.Handoff)
	assert.False(t, res.Err)

	history := o.History().Get("alice")
	require.Len(t, history, 2)
	assert.Equal(t, "What are your business hours?", history[0].Content)
	assert.Equal(t, "We are open 9 to 5.", history[1].Content)

	// The prompt handed to the completer carries the knowledge context.
	prompt := completer.Calls[0].Arguments.Get(1).([]Message)
	require.GreaterOrEqual(t, len(prompt), 3)
	assert.Contains(t, prompt[len(prompt)-2].Content, "Type: faq, Name/Title: What are your business hours?")
}

func TestCustomerTurn_HandoffAppended(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("Let me check.", nil)
	o := newTestOrchestrator(completer)

	res, err := o.CustomerTurn(context.Background(), customer("alice"), "I need to talk to a human now")
	require.NoError(t, err)
	assert.True(t, res.Handoff)
	assert.Contains(t, res.Response, "Let me check.")
	assert.Contains(t, res.Response, "connect you with a human agent")
}

func TestCustomerTurn_InferenceFailure(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("upstream down"))
	o := newTestOrchestrator(completer)

	res, err := o.CustomerTurn(context.Background(), customer("alice"), "where is my order")
	require.NoError(t, err)
	assert.True(t, res.Handoff)
	assert.True(t, res.Err)
	assert.Contains(t, res.Response, "try again in a moment")

	// The failed reply is not recorded.
	history := o.History().Get("alice")
	require.Len(t, history, 1)
	assert.Equal(t, RoleUser, history[0].Role)
}

func TestCustomerTurn_RoleGating(t *testing.T) {
	completer := new(mockCompleter)
	o := newTestOrchestrator(completer)

	_, err := o.CustomerTurn(context.Background(), agent("bob"), "hello")
	assert.ErrorIs(t, err, domain.ErrRoleNotAllowed)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAgentVariants_RoleGating(t *testing.T) {
	completer := new(mockCompleter)
	o := newTestOrchestrator(completer)
	ctx := context.Background()
	cust := customer("alice")

	_, err := o.AgentAssist(ctx, cust, "q", "")
	assert.ErrorIs(t, err, domain.ErrRoleNotAllowed)

	_, err = o.TicketSummary(ctx, cust, "history")
	assert.ErrorIs(t, err, domain.ErrRoleNotAllowed)

	_, err = o.ResponseDraft(ctx, cust, "q", "", "friendly")
	assert.ErrorIs(t, err, domain.ErrRoleNotAllowed)

	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAgentAssist(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("Tell them about the return policy.", nil)
	o := newTestOrchestrator(completer)

	out, err := o.AgentAssist(context.Background(), agent("bob"), "how do returns work?", "Customer: I want a refund")
	require.NoError(t, err)
	assert.Equal(t, "Tell them about the return policy.", out)

	prompt := completer.Calls[0].Arguments.Get(1).([]Message)
	assert.Equal(t, RoleUser, prompt[len(prompt)-1].Role)
	assert.Equal(t, "how do returns work?", prompt[len(prompt)-1].Content)
}

func TestTicketSummary(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("Customer wants refund.", nil)
	o := newTestOrchestrator(completer)

	out, err := o.TicketSummary(context.Background(), agent("bob"), "Customer: refund please")
	require.NoError(t, err)
	assert.Equal(t, "Customer wants refund.", out)
}

func TestResponseDraft(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("Dear customer, ...", nil)
	o := newTestOrchestrator(completer)

	out, err := o.ResponseDraft(context.Background(), agent("bob"), "where is my order", "Order shipped", "friendly")
	require.NoError(t, err)
	assert.Equal(t, "Dear customer, ...", out)
}
