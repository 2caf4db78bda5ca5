package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCustomerPrompt_ExcludesCurrentTurnFromHistory(t *testing.T) {
	history := []Message{{Role: RoleUser, Content: "hi"}}

	prompt := BuildCustomerPrompt(history, nil, "hi")

	require.Len(t, prompt, 2)
	assert.Equal(t, RoleSystem, prompt[0].Role)
	assert.Equal(t, RoleUser, prompt[1].Role)
	assert.Equal(t, "hi", prompt[1].Content)

	occurrences := 0
	for _, msg := range prompt {
		if msg.Content == "hi" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestBuildCustomerPrompt_Ordering(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "first question"},
		{Role: RoleAssistant, Content: "first answer"},
		{Role: RoleUser, Content: "second question"},
	}
	matches := []Record{FAQRecord{ID: "faq_hours", Question: "What are your business hours?", Answer: "We are open 9 AM to 5 PM, Monday to Friday."}}

	prompt := BuildCustomerPrompt(history, matches, "second question")

	require.Len(t, prompt, 5)
	assert.Equal(t, RoleSystem, prompt[0].Role)
	assert.Equal(t, "first question", prompt[1].Content)
	assert.Equal(t, "first answer", prompt[2].Content)
	assert.Equal(t, RoleSystem, prompt[3].Role)
	assert.Contains(t, prompt[3].Content, "Relevant information from our knowledge base")
	assert.Equal(t, "second question", prompt[4].Content)
}

func TestKnowledgeContext_LineFormat(t *testing.T) {
	matcher := NewMatcher(NewStore())
	matches := matcher.Search("What are your business hours?")
	require.Len(t, matches, 1)

	prompt := BuildCustomerPrompt(nil, matches, "What are your business hours?")

	var kbMsg string
	for _, msg := range prompt[1:] {
		if msg.Role == RoleSystem {
			kbMsg = msg.Content
		}
	}
	assert.Contains(t, kbMsg, "Type: faq, Name/Title: What are your business hours?, Details: We are open 9 AM to 5 PM, Monday to Friday.")
}

func TestBuildAssistPrompt(t *testing.T) {
	prompt := BuildAssistPrompt("Customer: my widget broke", nil, "what should I tell them?")

	require.Len(t, prompt, 3)
	assert.Equal(t, RoleSystem, prompt[0].Role)
	assert.Contains(t, prompt[1].Content, "my widget broke")
	assert.Equal(t, Message{Role: RoleUser, Content: "what should I tell them?"}, prompt[2])

	t.Run("blank context omitted", func(t *testing.T) {
		prompt := BuildAssistPrompt("   ", nil, "q")
		assert.Len(t, prompt, 2)
	})
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt("Customer: hello\nAgent: hi")

	require.Len(t, prompt, 2)
	assert.Equal(t, RoleSystem, prompt[0].Role)
	assert.Equal(t, "Customer: hello\nAgent: hi", prompt[1].Content)
}

func TestBuildDraftPrompt_Tones(t *testing.T) {
	for _, tone := range []string{"professional", "friendly", "technical", "simple"} {
		prompt := BuildDraftPrompt("where is my order", "", tone)
		require.Len(t, prompt, 2)
		assert.True(t, strings.Contains(prompt[0].Content, "tone"))
	}

	t.Run("unknown tone falls back to professional", func(t *testing.T) {
		unknown := BuildDraftPrompt("q", "", "sarcastic")
		professional := BuildDraftPrompt("q", "", "professional")
		assert.Equal(t, professional[0].Content, unknown[0].Content)
	})

	t.Run("relevant info becomes system message", func(t *testing.T) {
		prompt := BuildDraftPrompt("where is my order", "Order #42 shipped Monday", "friendly")
		require.Len(t, prompt, 3)
		assert.Contains(t, prompt[1].Content, "Order #42 shipped Monday")
	})
}
