package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/api/middleware"
	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/service"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, companyID string, input service.ProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id, companyID string) (*domain.Product, error)
	ListProducts(ctx context.Context, companyID, cursor string, limit int) (*service.ProductPageResult, error)
	UpdateProduct(ctx context.Context, id, companyID string, input service.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id, companyID string) error

	CreateService(ctx context.Context, companyID string, input service.ServiceInput) (*domain.Service, error)
	GetService(ctx context.Context, id, companyID string) (*domain.Service, error)
	ListServices(ctx context.Context, companyID, cursor string, limit int) (*service.ServicePageResult, error)
	UpdateService(ctx context.Context, id, companyID string, input service.ServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, id, companyID string) error

	CreateFAQ(ctx context.Context, companyID string, input service.FAQInput) (*domain.FAQ, error)
	GetFAQ(ctx context.Context, id, companyID string) (*domain.FAQ, error)
	ListFAQs(ctx context.Context, companyID, cursor string, limit int) (*service.FAQPageResult, error)
	UpdateFAQ(ctx context.Context, id, companyID string, input service.FAQInput) (*domain.FAQ, error)
	DeleteFAQ(ctx context.Context, id, companyID string) error

	CreatePolicy(ctx context.Context, companyID string, input service.PolicyInput) (*domain.Policy, error)
	GetPolicy(ctx context.Context, id, companyID string) (*domain.Policy, error)
	ListPolicies(ctx context.Context, companyID, cursor string, limit int) (*service.PolicyPageResult, error)
	UpdatePolicy(ctx context.Context, id, companyID string, input service.PolicyInput) (*domain.Policy, error)
	DeletePolicy(ctx context.Context, id, companyID string) error

	AnswerProductQuestion(ctx context.Context, productID, companyID string) (string, error)
	PurchaseProduct(ctx context.Context, productID, companyID string) (string, error)
	BookService(ctx context.Context, serviceID, companyID string) (string, error)
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func listParams(r *http.Request) (cursor string, limit int) {
	cursor = r.URL.Query().Get("cursor")
	limit = 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return cursor, limit
}

type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func productToResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), principal.CompanyID, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, productToResponse(product))
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	product, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, productToResponse(product))
}

type ProductListResponse struct {
	Items   []*ProductResponse `json:"items"`
	Cursor  string             `json:"cursor,omitempty"`
	HasMore bool               `json:"has_more"`
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cursor, limit := listParams(r)
	page, err := h.svc.ListProducts(r.Context(), principal.CompanyID, cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items := make([]*ProductResponse, len(page.Items))
	for i, p := range page.Items {
		items[i] = productToResponse(p)
	}
	api.Success(w, http.StatusOK, ProductListResponse{Items: items, Cursor: page.NextCursor, HasMore: page.HasMore})
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), principal.CompanyID, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, productToResponse(product))
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id"), principal.CompanyID); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusNoContent, nil)
}

type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Period      string `json:"period"`
}

type ServiceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Period      string `json:"period,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func serviceToResponse(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		PriceCents:  s.PriceCents,
		Period:      s.Period,
		CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   s.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	svc, err := h.svc.CreateService(r.Context(), principal.CompanyID, service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Period:      req.Period,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, serviceToResponse(svc))
}

func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	svc, err := h.svc.GetService(r.Context(), chi.URLParam(r, "id"), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, serviceToResponse(svc))
}

type ServiceListResponse struct {
	Items   []*ServiceResponse `json:"items"`
	Cursor  string             `json:"cursor,omitempty"`
	HasMore bool               `json:"has_more"`
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cursor, limit := listParams(r)
	page, err := h.svc.ListServices(r.Context(), principal.CompanyID, cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items := make([]*ServiceResponse, len(page.Items))
	for i, s := range page.Items {
		items[i] = serviceToResponse(s)
	}
	api.Success(w, http.StatusOK, ServiceListResponse{Items: items, Cursor: page.NextCursor, HasMore: page.HasMore})
}

func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	svc, err := h.svc.UpdateService(r.Context(), chi.URLParam(r, "id"), principal.CompanyID, service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Period:      req.Period,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, serviceToResponse(svc))
}

func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeleteService(r.Context(), chi.URLParam(r, "id"), principal.CompanyID); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusNoContent, nil)
}

type FAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQResponse struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func faqToResponse(f *domain.FAQ) *FAQResponse {
	return &FAQResponse{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: f.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *CatalogHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req FAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.Answer == "" {
		api.Error(w, http.StatusBadRequest, "answer is required")
		return
	}

	faq, err := h.svc.CreateFAQ(r.Context(), principal.CompanyID, service.FAQInput{
		Question: req.Question,
		Answer:   req.Answer,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, faqToResponse(faq))
}

func (h *CatalogHandler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	faq, err := h.svc.GetFAQ(r.Context(), chi.URLParam(r, "id"), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, faqToResponse(faq))
}

type FAQListResponse struct {
	Items   []*FAQResponse `json:"items"`
	Cursor  string         `json:"cursor,omitempty"`
	HasMore bool           `json:"has_more"`
}

func (h *CatalogHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cursor, limit := listParams(r)
	page, err := h.svc.ListFAQs(r.Context(), principal.CompanyID, cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items := make([]*FAQResponse, len(page.Items))
	for i, f := range page.Items {
		items[i] = faqToResponse(f)
	}
	api.Success(w, http.StatusOK, FAQListResponse{Items: items, Cursor: page.NextCursor, HasMore: page.HasMore})
}

func (h *CatalogHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req FAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.Answer == "" {
		api.Error(w, http.StatusBadRequest, "answer is required")
		return
	}

	faq, err := h.svc.UpdateFAQ(r.Context(), chi.URLParam(r, "id"), principal.CompanyID, service.FAQInput{
		Question: req.Question,
		Answer:   req.Answer,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, faqToResponse(faq))
}

func (h *CatalogHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeleteFAQ(r.Context(), chi.URLParam(r, "id"), principal.CompanyID); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusNoContent, nil)
}

type PolicyRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PolicyResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func policyToResponse(p *domain.Policy) *PolicyResponse {
	return &PolicyResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *CatalogHandler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		api.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Content == "" {
		api.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	policy, err := h.svc.CreatePolicy(r.Context(), principal.CompanyID, service.PolicyInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, policyToResponse(policy))
}

func (h *CatalogHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	policy, err := h.svc.GetPolicy(r.Context(), chi.URLParam(r, "id"), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, policyToResponse(policy))
}

type PolicyListResponse struct {
	Items   []*PolicyResponse `json:"items"`
	Cursor  string            `json:"cursor,omitempty"`
	HasMore bool              `json:"has_more"`
}

func (h *CatalogHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cursor, limit := listParams(r)
	page, err := h.svc.ListPolicies(r.Context(), principal.CompanyID, cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items := make([]*PolicyResponse, len(page.Items))
	for i, p := range page.Items {
		items[i] = policyToResponse(p)
	}
	api.Success(w, http.StatusOK, PolicyListResponse{Items: items, Cursor: page.NextCursor, HasMore: page.HasMore})
}

func (h *CatalogHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		api.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Content == "" {
		api.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	policy, err := h.svc.UpdatePolicy(r.Context(), chi.URLParam(r, "id"), principal.CompanyID, service.PolicyInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, policyToResponse(policy))
}

func (h *CatalogHandler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeletePolicy(r.Context(), chi.URLParam(r, "id"), principal.CompanyID); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusNoContent, nil)
}

type ActionResponse struct {
	Message string `json:"message"`
}

// AskProduct acknowledges a customer question about a product.
func (h *CatalogHandler) AskProduct(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	msg, err := h.svc.AnswerProductQuestion(r.Context(), chi.URLParam(r, "id"), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ActionResponse{Message: msg})
}

// PurchaseProduct confirms a direct product purchase.
func (h *CatalogHandler) PurchaseProduct(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	msg, err := h.svc.PurchaseProduct(r.Context(), chi.URLParam(r, "id"), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ActionResponse{Message: msg})
}

// BookService confirms a service booking.
func (h *CatalogHandler) BookService(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	msg, err := h.svc.BookService(r.Context(), chi.URLParam(r, "id"), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ActionResponse{Message: msg})
}
