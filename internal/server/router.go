package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/api/handlers"
	"github.com/crestline-labs/supportdesk/internal/api/middleware"
	"github.com/crestline-labs/supportdesk/internal/domain"
)

type RouterConfig struct {
	TokenVerifier  middleware.TokenVerifier
	AuthHandler    *handlers.AuthHandler
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
	ChatHandler    *handlers.ChatHandler
	AssistHandler  *handlers.AssistHandler
	SearchHandler  *handlers.SearchHandler
	LogoHandler    *handlers.LogoHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/register/company", cfg.AuthHandler.RegisterCompany)
	r.Post("/auth/register/user", cfg.AuthHandler.RegisterUser)
	r.Post("/auth/login", cfg.AuthHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(cfg.TokenVerifier))

		r.With(middleware.RequireRole(domain.RoleAdmin)).Get("/users", cfg.AuthHandler.ListUsers)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListProducts)
			r.Get("/{id}", cfg.CatalogHandler.GetProduct)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/", cfg.CatalogHandler.CreateProduct)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Put("/{id}", cfg.CatalogHandler.UpdateProduct)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{id}", cfg.CatalogHandler.DeleteProduct)
			r.With(middleware.RequireRole(domain.RoleAdmin, domain.RoleAgent)).Post("/{id}/ask", cfg.CatalogHandler.AskProduct)
			r.With(middleware.RequireRole(domain.RoleCustomer)).Post("/{id}/purchase", cfg.CatalogHandler.PurchaseProduct)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListServices)
			r.Get("/{id}", cfg.CatalogHandler.GetService)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/", cfg.CatalogHandler.CreateService)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Put("/{id}", cfg.CatalogHandler.UpdateService)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{id}", cfg.CatalogHandler.DeleteService)
			r.With(middleware.RequireRole(domain.RoleCustomer)).Post("/{id}/book", cfg.CatalogHandler.BookService)
		})

		r.Route("/faqs", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListFAQs)
			r.Get("/{id}", cfg.CatalogHandler.GetFAQ)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/", cfg.CatalogHandler.CreateFAQ)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Put("/{id}", cfg.CatalogHandler.UpdateFAQ)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{id}", cfg.CatalogHandler.DeleteFAQ)
		})

		r.Route("/policies", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListPolicies)
			r.Get("/{id}", cfg.CatalogHandler.GetPolicy)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/", cfg.CatalogHandler.CreatePolicy)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Put("/{id}", cfg.CatalogHandler.UpdatePolicy)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{id}", cfg.CatalogHandler.DeletePolicy)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleCustomer))
			r.Post("/items", cfg.CartHandler.AddItem)
			r.Get("/items", cfg.CartHandler.ListItems)
			r.Put("/items/{id}", cfg.CartHandler.UpdateQuantity)
			r.Delete("/items/{id}", cfg.CartHandler.RemoveItem)
			r.Post("/checkout", cfg.CartHandler.Checkout)
		})

		r.With(middleware.RequireRole(domain.RoleCustomer)).Post("/chat", cfg.ChatHandler.Chat)

		r.Route("/assist", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleAgent))
			r.Post("/", cfg.AssistHandler.AgentAssist)
			r.Post("/summary", cfg.AssistHandler.TicketSummary)
			r.Post("/draft", cfg.AssistHandler.ResponseDraft)
		})

		r.With(middleware.RequireRole(domain.RoleAdmin, domain.RoleAgent)).Post("/search", cfg.SearchHandler.Search)

		r.Route("/company/logo", func(r chi.Router) {
			r.Get("/", cfg.LogoHandler.Download)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/upload", cfg.LogoHandler.InitUpload)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/complete", cfg.LogoHandler.CompleteUpload)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/", cfg.LogoHandler.Delete)
		})
	})

	return r
}
