package domain

import (
	"fmt"
	"strings"
	"time"
)

// Company represents a tenant in the system. All catalog records and users
// are scoped to a company.
type Company struct {
	ID           string
	Name         string // normalized lowercase, unique
	Email        string
	Phone        string
	Website      string
	Industry     string
	Description  string
	LogoKey      string // object storage key, empty when no logo uploaded
	PasswordHash string
	CreatedAt    time.Time
}

// NewCompany creates a new Company instance with a normalized name
func NewCompany(id, name, email, passwordHash string, createdAt time.Time) *Company {
	return &Company{
		ID:           id,
		Name:         NormalizeCompanyName(name),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
}

// NormalizeCompanyName lowercases and trims a company name for storage and lookup
func NormalizeCompanyName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateCompany validates a Company instance
func ValidateCompany(c *Company) error {
	if c == nil {
		return fmt.Errorf("company cannot be nil")
	}

	if c.ID == "" {
		return fmt.Errorf("company ID is required")
	}

	if c.Name == "" {
		return fmt.Errorf("company Name is required")
	}

	if c.Email == "" {
		return fmt.Errorf("company Email is required")
	}

	if c.PasswordHash == "" {
		return fmt.Errorf("company PasswordHash is required")
	}

	return nil
}
