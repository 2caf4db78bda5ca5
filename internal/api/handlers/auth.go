package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/api/middleware"
	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/service"
)

type AuthService interface {
	RegisterCompany(ctx context.Context, input service.RegisterCompanyInput) (*domain.Company, error)
	RegisterUser(ctx context.Context, input service.RegisterUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginOutput, error)
	ListUsers(ctx context.Context, companyID string) ([]*domain.User, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterCompanyRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func companyToResponse(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Website:     c.Website,
		Industry:    c.Industry,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *AuthHandler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req RegisterCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Email == "" {
		api.Error(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Password == "" {
		api.Error(w, http.StatusBadRequest, "password is required")
		return
	}

	company, err := h.svc.RegisterCompany(r.Context(), service.RegisterCompanyInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		Website:     req.Website,
		Industry:    req.Industry,
		Description: req.Description,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, companyToResponse(company))
}

type RegisterUserRequest struct {
	Handle      string `json:"handle"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	Role        string `json:"role"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Handle    string `json:"handle"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func userToResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Handle:    u.Handle,
		Email:     u.Email,
		CompanyID: u.CompanyID,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Handle == "" {
		api.Error(w, http.StatusBadRequest, "handle is required")
		return
	}
	if req.Email == "" {
		api.Error(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Password == "" {
		api.Error(w, http.StatusBadRequest, "password is required")
		return
	}
	if req.CompanyName == "" {
		api.Error(w, http.StatusBadRequest, "company_name is required")
		return
	}

	user, err := h.svc.RegisterUser(r.Context(), service.RegisterUserInput{
		Handle:      req.Handle,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		Role:        req.Role,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, userToResponse(user))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	out, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, LoginResponse{
		AccessToken: out.AccessToken,
		TokenType:   out.TokenType,
		Role:        string(out.Role),
	})
}

// ListUsers returns the members of the caller's company.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	users, err := h.svc.ListUsers(r.Context(), principal.CompanyID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = userToResponse(u)
	}
	api.Success(w, http.StatusOK, responses)
}
