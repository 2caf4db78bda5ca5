package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/api/middleware"
	"github.com/crestline-labs/supportdesk/internal/service"
)

type SearchService interface {
	Search(ctx context.Context, companyID, query string, limit int) ([]*service.SearchHit, error)
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SearchHitResponse struct {
	Kind       string  `json:"kind"`
	RecordID   string  `json:"record_id"`
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	Similarity float64 `json:"similarity"`
}

type SearchResponse struct {
	Hits []*SearchHitResponse `json:"hits"`
}

// Search runs a semantic query over the caller's company catalog.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	hits, err := h.svc.Search(r.Context(), principal.CompanyID, req.Query, req.Limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*SearchHitResponse, len(hits))
	for i, hit := range hits {
		responses[i] = &SearchHitResponse{
			Kind:       string(hit.Kind),
			RecordID:   hit.RecordID,
			Title:      hit.Title,
			Snippet:    hit.Snippet,
			Similarity: hit.Similarity,
		}
	}
	api.Success(w, http.StatusOK, SearchResponse{Hits: responses})
}
