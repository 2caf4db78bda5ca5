package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/api/middleware"
	"github.com/crestline-labs/supportdesk/internal/chat"
	"github.com/crestline-labs/supportdesk/internal/domain"
)

// ChatService is the customer-facing slice of the chat orchestrator.
type ChatService interface {
	CustomerTurn(ctx context.Context, p domain.Principal, message string) (*chat.Result, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Handoff  bool   `json:"handoff"`
	Error    bool   `json:"error"`
}

// Chat runs one customer chat turn. Inference trouble surfaces as a
// 200 with the error flag set, not as an HTTP failure.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CustomerTurn(r.Context(), *principal, req.Message)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ChatResponse{
		Response: result.Response,
		Handoff:  result.Handoff,
		Error:    result.Err,
	})
}
