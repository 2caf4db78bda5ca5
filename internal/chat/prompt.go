package chat

import (
	"fmt"
	"strings"
)

const customerPersona = "You are CustomerSupportGPT, a friendly and helpful AI assistant for our company. " +
	"Your primary goal is to assist users by answering their questions based on the provided knowledge base information and chat history. " +
	"If the user's question is not covered by the knowledge base or is too complex, clearly state that you cannot provide the specific information and politely suggest that they might need to speak to a human agent for further assistance. " +
	"Do not invent answers or provide information outside of the scope given. Be concise, professional, and empathetic."

const assistPersona = "You are an internal assistant for customer support agents. " +
	"Given a customer conversation and an agent's question, provide accurate, actionable guidance. " +
	"Structure your answer as short labeled sections: first the direct answer, then any caveats, then suggested next steps. " +
	"If the conversation does not contain enough information, say so explicitly instead of guessing."

const summaryPersona = "You are a ticket summarization assistant for customer support. " +
	"Summarize the following conversation into a short ticket note: state the customer's issue, " +
	"what has been tried so far, and the current status. Be factual and omit pleasantries."

// Tone options for drafted responses. Unrecognized values fall back to
// professional.
var draftTones = map[string]string{
	"professional": "a professional, courteous",
	"friendly":     "a warm, friendly",
	"technical":    "a precise, technical",
	"simple":       "a plain, jargon-free",
}

func draftPersona(tone string) string {
	style, ok := draftTones[strings.ToLower(strings.TrimSpace(tone))]
	if !ok {
		style = draftTones["professional"]
	}
	return "You are a response drafting assistant for customer support agents. " +
		"Write a reply to the customer's message in " + style + " tone. " +
		"Use any relevant information provided, address the customer directly, and keep the draft ready to send."
}

// knowledgeContext renders matched records as a single system message, one
// line per record.
func knowledgeContext(matches []Record) string {
	var b strings.Builder
	b.WriteString("Relevant information from our knowledge base:\n")
	for _, rec := range matches {
		fmt.Fprintf(&b, "- Type: %s, Name/Title: %s, Details: %s\n", rec.Kind(), rec.Primary(), rec.Secondary())
	}
	b.WriteString("Please use this information if relevant to answer the user's query.\n")
	return b.String()
}

// BuildCustomerPrompt assembles the message sequence for a customer chat
// turn. The caller has already appended the incoming message to history, so
// the final history entry is excluded here and re-added once as the closing
// user message.
func BuildCustomerPrompt(history []Message, matches []Record, userMessage string) []Message {
	msgs := []Message{{Role: RoleSystem, Content: customerPersona}}

	if len(history) > 0 {
		msgs = append(msgs, history[:len(history)-1]...)
	}

	if len(matches) > 0 {
		msgs = append(msgs, Message{Role: RoleSystem, Content: knowledgeContext(matches)})
	}

	return append(msgs, Message{Role: RoleUser, Content: userMessage})
}

// BuildAssistPrompt assembles the message sequence for the agent-assist
// variant. The query goes in raw as the final user message.
func BuildAssistPrompt(conversationContext string, matches []Record, query string) []Message {
	msgs := []Message{{Role: RoleSystem, Content: assistPersona}}

	if strings.TrimSpace(conversationContext) != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: "Customer conversation:\n" + conversationContext})
	}

	if len(matches) > 0 {
		msgs = append(msgs, Message{Role: RoleSystem, Content: knowledgeContext(matches)})
	}

	return append(msgs, Message{Role: RoleUser, Content: query})
}

// BuildSummaryPrompt assembles the message sequence for the ticket-summary
// variant.
func BuildSummaryPrompt(conversationHistory string) []Message {
	return []Message{
		{Role: RoleSystem, Content: summaryPersona},
		{Role: RoleUser, Content: conversationHistory},
	}
}

// BuildDraftPrompt assembles the message sequence for the response-draft
// variant.
func BuildDraftPrompt(customerQuery, relevantInfo, tone string) []Message {
	msgs := []Message{{Role: RoleSystem, Content: draftPersona(tone)}}

	if strings.TrimSpace(relevantInfo) != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: "Relevant information:\n" + relevantInfo})
	}

	return append(msgs, Message{Role: RoleUser, Content: customerQuery})
}
