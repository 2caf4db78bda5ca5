package domain

import (
	"fmt"
	"time"
)

// Product is a sellable item in a company's catalog. Price is stored in cents.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	PriceCents  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service is a bookable offering with an optional billing period
// (monthly, yearly, one-time).
type Service struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	PriceCents  int64
	Period      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FAQ is a question/answer pair in a company's knowledge catalog.
type FAQ struct {
	ID        string
	CompanyID string
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Policy is a titled policy document (returns, privacy, ...).
type Policy struct {
	ID        string
	CompanyID string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductQuestion is a customer question attached to a product.
type ProductQuestion struct {
	ID         string
	ProductID  string
	CustomerID string
	Question   string
	CreatedAt  time.Time
}

// ProductAnswer is an agent's answer to a product question.
type ProductAnswer struct {
	ID         string
	QuestionID string
	ProductID  string
	AgentID    string
	Answer     string
	CreatedAt  time.Time
}

// ValidateProduct validates a Product instance
func ValidateProduct(p *Product) error {
	if p == nil {
		return fmt.Errorf("product cannot be nil")
	}
	if p.ID == "" {
		return fmt.Errorf("product ID is required")
	}
	if p.CompanyID == "" {
		return fmt.Errorf("product CompanyID is required")
	}
	if p.Name == "" {
		return fmt.Errorf("product Name is required")
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("product PriceCents cannot be negative")
	}
	return nil
}

// ValidateService validates a Service instance
func ValidateService(s *Service) error {
	if s == nil {
		return fmt.Errorf("service cannot be nil")
	}
	if s.ID == "" {
		return fmt.Errorf("service ID is required")
	}
	if s.CompanyID == "" {
		return fmt.Errorf("service CompanyID is required")
	}
	if s.Name == "" {
		return fmt.Errorf("service Name is required")
	}
	if s.PriceCents < 0 {
		return fmt.Errorf("service PriceCents cannot be negative")
	}
	return nil
}

// ValidateFAQ validates a FAQ instance
func ValidateFAQ(f *FAQ) error {
	if f == nil {
		return fmt.Errorf("faq cannot be nil")
	}
	if f.ID == "" {
		return fmt.Errorf("faq ID is required")
	}
	if f.CompanyID == "" {
		return fmt.Errorf("faq CompanyID is required")
	}
	if f.Question == "" {
		return fmt.Errorf("faq Question is required")
	}
	if f.Answer == "" {
		return fmt.Errorf("faq Answer is required")
	}
	return nil
}

// ValidatePolicy validates a Policy instance
func ValidatePolicy(p *Policy) error {
	if p == nil {
		return fmt.Errorf("policy cannot be nil")
	}
	if p.ID == "" {
		return fmt.Errorf("policy ID is required")
	}
	if p.CompanyID == "" {
		return fmt.Errorf("policy CompanyID is required")
	}
	if p.Title == "" {
		return fmt.Errorf("policy Title is required")
	}
	if p.Content == "" {
		return fmt.Errorf("policy Content is required")
	}
	return nil
}
