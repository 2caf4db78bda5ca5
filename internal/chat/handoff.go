package chat

import "strings"

var handoffKeywords = []string{
	"human", "agent", "representative", "speak to someone",
	"live person", "real person", "talk to a human",
}

var cantHelpPhrases = []string{
	"i'm not sure", "i cannot answer that", "i don't have that information",
	"i am unable to help with that", "my apologies, i can't assist",
	"that is beyond my capabilities",
}

// NeedsHandoff reports whether the exchange should be escalated to a human
// agent, either because the user asked for one or because the reply admits
// it cannot help.
func NeedsHandoff(userMessage, botReply string) bool {
	userLower := strings.ToLower(userMessage)
	for _, kw := range handoffKeywords {
		if strings.Contains(userLower, kw) {
			return true
		}
	}

	replyLower := strings.ToLower(botReply)
	for _, phrase := range cantHelpPhrases {
		if strings.Contains(replyLower, phrase) {
			return true
		}
	}
	return false
}
