package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/api/middleware"
	"github.com/crestline-labs/supportdesk/internal/service"
)

type LogoService interface {
	InitUpload(ctx context.Context, companyID, contentType string) (*service.InitLogoUploadResult, error)
	CompleteUpload(ctx context.Context, companyID, storageKey string) error
	DownloadURL(ctx context.Context, companyID string) (string, error)
	DeleteLogo(ctx context.Context, companyID string) error
}

type LogoHandler struct {
	svc LogoService
}

func NewLogoHandler(svc LogoService) *LogoHandler {
	return &LogoHandler{svc: svc}
}

type InitLogoUploadRequest struct {
	ContentType string `json:"content_type"`
}

type InitLogoUploadResponse struct {
	StorageKey string `json:"storage_key"`
	UploadURL  string `json:"upload_url"`
}

func (h *LogoHandler) InitUpload(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req InitLogoUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ContentType == "" {
		api.Error(w, http.StatusBadRequest, "content_type is required")
		return
	}

	result, err := h.svc.InitUpload(r.Context(), principal.CompanyID, req.ContentType)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, InitLogoUploadResponse{
		StorageKey: result.StorageKey,
		UploadURL:  result.UploadURL,
	})
}

type CompleteLogoUploadRequest struct {
	StorageKey string `json:"storage_key"`
}

func (h *LogoHandler) CompleteUpload(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CompleteLogoUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StorageKey == "" {
		api.Error(w, http.StatusBadRequest, "storage_key is required")
		return
	}

	if err := h.svc.CompleteUpload(r.Context(), principal.CompanyID, req.StorageKey); err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ActionResponse{Message: "logo updated"})
}

type LogoDownloadResponse struct {
	DownloadURL string `json:"download_url"`
}

func (h *LogoHandler) Download(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	url, err := h.svc.DownloadURL(r.Context(), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, LogoDownloadResponse{DownloadURL: url})
}

func (h *LogoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeleteLogo(r.Context(), principal.CompanyID); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusNoContent, nil)
}
