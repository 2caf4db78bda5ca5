package inference

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/crestline-labs/supportdesk/internal/chat"
)

// DefaultChatModel is the chat model used when none is configured.
const DefaultChatModel = "llama-3.1-8b-instant"

// OpenAICompatible calls any OpenAI-compatible chat completion endpoint,
// such as Groq or a self-hosted gateway, selected via the base URL.
type OpenAICompatible struct {
	client *openai.Client
	model  string
}

// NewOpenAICompatible creates a chat completion client. An empty baseURL
// targets the OpenAI API itself.
func NewOpenAICompatible(apiKey, baseURL, model string) *OpenAICompatible {
	if model == "" {
		model = DefaultChatModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}
	return &OpenAICompatible{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the prompt as a chat completion request. One attempt only.
func (c *OpenAICompatible) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: 0.6,
		MaxTokens:   1024,
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Reason: ReasonMalformedResponse, Err: errors.New("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &Error{Reason: ReasonTimeout, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Reason: ReasonUpstreamStatus, Status: apiErr.HTTPStatusCode, Err: err}
	}
	return &Error{Reason: ReasonUnknown, Err: err}
}
