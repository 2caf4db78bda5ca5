package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/api/middleware"
	"github.com/crestline-labs/supportdesk/internal/domain"
)

// AssistService is the agent-facing slice of the chat orchestrator.
type AssistService interface {
	AgentAssist(ctx context.Context, p domain.Principal, query, conversationContext string) (string, error)
	TicketSummary(ctx context.Context, p domain.Principal, conversationHistory string) (string, error)
	ResponseDraft(ctx context.Context, p domain.Principal, customerQuery, relevantInfo, tone string) (string, error)
}

type AssistHandler struct {
	svc AssistService
}

func NewAssistHandler(svc AssistService) *AssistHandler {
	return &AssistHandler{svc: svc}
}

type AgentAssistRequest struct {
	Query               string `json:"query"`
	ConversationContext string `json:"conversation_context"`
}

type AssistResponse struct {
	Response string `json:"response"`
}

func (h *AssistHandler) AgentAssist(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AgentAssistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	resp, err := h.svc.AgentAssist(r.Context(), *principal, req.Query, req.ConversationContext)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, AssistResponse{Response: resp})
}

type TicketSummaryRequest struct {
	ConversationHistory string `json:"conversation_history"`
}

type TicketSummaryResponse struct {
	Summary string `json:"summary"`
}

func (h *AssistHandler) TicketSummary(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req TicketSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ConversationHistory == "" {
		api.Error(w, http.StatusBadRequest, "conversation_history is required")
		return
	}

	summary, err := h.svc.TicketSummary(r.Context(), *principal, req.ConversationHistory)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, TicketSummaryResponse{Summary: summary})
}

type ResponseDraftRequest struct {
	CustomerQuery string `json:"customer_query"`
	RelevantInfo  string `json:"relevant_info"`
	Tone          string `json:"tone"`
}

type ResponseDraftResponse struct {
	Draft string `json:"draft"`
}

func (h *AssistHandler) ResponseDraft(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ResponseDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerQuery == "" {
		api.Error(w, http.StatusBadRequest, "customer_query is required")
		return
	}

	draft, err := h.svc.ResponseDraft(r.Context(), *principal, req.CustomerQuery, req.RelevantInfo, req.Tone)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ResponseDraftResponse{Draft: draft})
}
