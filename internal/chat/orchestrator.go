package chat

import (
	"context"
	"log"
	"strings"

	"github.com/crestline-labs/supportdesk/internal/domain"
)

// Completer generates a reply for an assembled prompt. Implementations make
// a single attempt per invocation; retry policy belongs to callers.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

const (
	emptyMessageReply = "Please type a message."
	greetingReply     = "Hello! I'm your virtual assistant. How can I help you today?"
	inferenceDownReply = "I'm having trouble connecting to the AI service right now. " +
		"Please try again in a moment, or I can connect you to a human agent."
	handoffReply = "I understand this may require further assistance. " +
		"Let me connect you with a human agent who can help you with that."
)

var greetings = map[string]bool{
	"hello":     true,
	"hi":        true,
	"hey":       true,
	"greetings": true,
}

// Result is the outcome of one customer chat turn.
type Result struct {
	Response string
	Handoff  bool
	Err      bool
}

// Orchestrator runs chat turns: knowledge retrieval, prompt assembly,
// inference, history upkeep, and handoff decisions.
type Orchestrator struct {
	matcher   *Matcher
	history   *History
	completer Completer
}

func NewOrchestrator(matcher *Matcher, history *History, completer Completer) *Orchestrator {
	return &Orchestrator{
		matcher:   matcher,
		history:   history,
		completer: completer,
	}
}

// History exposes the conversation store, for the idle-expiry sweeper.
func (o *Orchestrator) History() *History {
	return o.history
}

// CustomerTurn handles one customer-facing chat exchange. Inference
// failures are absorbed here: the caller gets an apology with a forced
// handoff flag, never a raw fault.
func (o *Orchestrator) CustomerTurn(ctx context.Context, p domain.Principal, message string) (*Result, error) {
	if p.Role != domain.RoleCustomer {
		return nil, domain.ErrRoleNotAllowed
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return &Result{Response: emptyMessageReply}, nil
	}

	o.history.Append(p.Handle, Message{Role: RoleUser, Content: message})

	matches := o.matcher.Search(message)
	prompt := BuildCustomerPrompt(o.history.Get(p.Handle), matches, message)

	// Simple greetings get a canned reply without spending an inference call.
	if greetings[strings.ToLower(message)] {
		o.history.Append(p.Handle, Message{Role: RoleAssistant, Content: greetingReply})
		return &Result{Response: greetingReply}, nil
	}

	reply, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("chat: inference failed for user %s: %v", p.Handle, err)
		return &Result{Response: inferenceDownReply, Handoff: true, Err: true}, nil
	}

	o.history.Append(p.Handle, Message{Role: RoleAssistant, Content: reply})

	if NeedsHandoff(message, reply) {
		log.Printf("chat: handoff triggered for user %s", p.Handle)
		return &Result{Response: reply + "\n\n" + handoffReply, Handoff: true}, nil
	}

	return &Result{Response: reply}, nil
}

// AgentAssist answers an agent's question about a customer conversation.
func (o *Orchestrator) AgentAssist(ctx context.Context, p domain.Principal, query, conversationContext string) (string, error) {
	if !p.Role.CanAssist() {
		return "", domain.ErrRoleNotAllowed
	}

	matches := o.matcher.Search(query)
	return o.completer.Complete(ctx, BuildAssistPrompt(conversationContext, matches, query))
}

// TicketSummary condenses a conversation into a ticket note.
func (o *Orchestrator) TicketSummary(ctx context.Context, p domain.Principal, conversationHistory string) (string, error) {
	if !p.Role.CanAssist() {
		return "", domain.ErrRoleNotAllowed
	}

	return o.completer.Complete(ctx, BuildSummaryPrompt(conversationHistory))
}

// ResponseDraft writes a customer-facing reply in the requested tone.
func (o *Orchestrator) ResponseDraft(ctx context.Context, p domain.Principal, customerQuery, relevantInfo, tone string) (string, error) {
	if !p.Role.CanAssist() {
		return "", domain.ErrRoleNotAllowed
	}

	return o.completer.Complete(ctx, BuildDraftPrompt(customerQuery, relevantInfo, tone))
}
