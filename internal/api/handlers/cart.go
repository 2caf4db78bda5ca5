package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/api/middleware"
	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/service"
)

type CartService interface {
	AddItem(ctx context.Context, p domain.Principal, input service.AddCartItemInput) (*domain.CartItem, error)
	ListItems(ctx context.Context, p domain.Principal) ([]*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, p domain.Principal, itemID string, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, p domain.Principal, itemID string) error
	Checkout(ctx context.Context, p domain.Principal) error
}

type CartHandler struct {
	svc CartService
}

func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type AddCartItemRequest struct {
	ProductID *string `json:"product_id,omitempty"`
	ServiceID *string `json:"service_id,omitempty"`
	Quantity  int     `json:"quantity"`
}

type CartItemResponse struct {
	ID        string  `json:"id"`
	ProductID *string `json:"product_id,omitempty"`
	ServiceID *string `json:"service_id,omitempty"`
	Quantity  int     `json:"quantity"`
	AddedAt   string  `json:"added_at"`
}

func cartItemToResponse(item *domain.CartItem) *CartItemResponse {
	return &CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		ServiceID: item.ServiceID,
		Quantity:  item.Quantity,
		AddedAt:   item.AddedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity <= 0 {
		api.Error(w, http.StatusBadRequest, "quantity must be greater than 0")
		return
	}

	item, err := h.svc.AddItem(r.Context(), *principal, service.AddCartItemInput{
		ProductID: req.ProductID,
		ServiceID: req.ServiceID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, cartItemToResponse(item))
}

func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.svc.ListItems(r.Context(), *principal)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*CartItemResponse, len(items))
	for i, item := range items {
		responses[i] = cartItemToResponse(item)
	}
	api.Success(w, http.StatusOK, responses)
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity <= 0 {
		api.Error(w, http.StatusBadRequest, "quantity must be greater than 0")
		return
	}

	item, err := h.svc.UpdateQuantity(r.Context(), *principal, chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, cartItemToResponse(item))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), *principal, chi.URLParam(r, "id")); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusNoContent, nil)
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.Checkout(r.Context(), *principal); err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ActionResponse{Message: "Your order has been placed. Thank you for your purchase!"})
}
