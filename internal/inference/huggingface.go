package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crestline-labs/supportdesk/internal/chat"
)

const (
	// DefaultHFModel is the text generation model used when none is configured.
	DefaultHFModel = "mistralai/Mistral-7B-Instruct-v0.2"

	hfBaseURL = "https://api-inference.huggingface.co/models/"

	// requestTimeout bounds the upstream call. A slower response surfaces
	// as a timeout Error.
	requestTimeout = 30 * time.Second
)

// HuggingFace calls the Hugging Face text generation inference endpoint.
type HuggingFace struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewHuggingFace creates a client for the hosted inference endpoint.
func NewHuggingFace(apiKey, model string) *HuggingFace {
	if model == "" {
		model = DefaultHFModel
	}
	return &HuggingFace{
		apiKey:  apiKey,
		model:   model,
		baseURL: hfBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p"`
	DoSample     bool    `json:"do_sample"`
}

type hfResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Complete serializes the prompt into the endpoint's single-transcript
// shape, posts it, and extracts the generated reply. One attempt only.
func (c *HuggingFace) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: serializeTranscript(messages),
		Parameters: hfParameters{
			MaxNewTokens: 512,
			Temperature:  0.7,
			TopP:         0.95,
			DoSample:     true,
		},
	})
	if err != nil {
		return "", &Error{Reason: ReasonUnknown, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.model, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Reason: ReasonUnknown, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", &Error{Reason: ReasonTimeout, Err: err}
		}
		return "", &Error{Reason: ReasonUnknown, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", &Error{
			Reason: ReasonUpstreamStatus,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("upstream returned %d: %s", resp.StatusCode, snippet),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Reason: ReasonUnknown, Err: err}
	}

	return extractGeneratedText(raw)
}

// serializeTranscript renders messages as "<Role>: <content>\n\n" lines
// with a trailing "Assistant: " cue, the shape the endpoint expects.
func serializeTranscript(messages []chat.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			b.WriteString("System: ")
		case chat.RoleUser:
			b.WriteString("User: ")
		case chat.RoleAssistant:
			b.WriteString("Assistant: ")
		}
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	b.WriteString("Assistant: ")
	return b.String()
}

// extractGeneratedText handles both response shapes the endpoint produces:
// a list of generated_text objects or a single such object. If the model
// echoed the prompt, only the text after the last "Assistant: " cue is the
// reply.
func extractGeneratedText(raw []byte) (string, error) {
	var list []hfResponse
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", &Error{Reason: ReasonMalformedResponse, Err: errors.New("empty response list")}
		}
		return stripPromptEcho(list[0].GeneratedText), nil
	}

	var single hfResponse
	if err := json.Unmarshal(raw, &single); err == nil {
		return single.GeneratedText, nil
	}

	return "", &Error{Reason: ReasonMalformedResponse, Err: errors.New("unexpected response structure")}
}

func stripPromptEcho(text string) string {
	const cue = "Assistant: "
	if idx := strings.LastIndex(text, cue); idx >= 0 {
		return strings.TrimSpace(text[idx+len(cue):])
	}
	return text
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
