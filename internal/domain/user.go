package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the access-control category of a user. It governs which catalog
// operations and which chat variants the user may invoke.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleCustomer Role = "customer"
)

// ParseRole normalizes a role string into a Role. Legacy clients send roles
// with mixed casing and "user" as a synonym for customer.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "agent":
		return RoleAgent, nil
	case "customer", "user":
		return RoleCustomer, nil
	}
	return "", ErrInvalidRole
}

// CanManageCatalog reports whether the role may create, update, or delete
// catalog records.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

// CanAssist reports whether the role may use the agent-facing chat variants.
func (r Role) CanAssist() bool {
	return r == RoleAdmin || r == RoleAgent
}

// User represents an authenticated member of a company.
type User struct {
	ID           string
	Handle       string // opaque unique handle, used as the chat history key
	Email        string
	PasswordHash string
	CompanyID    string
	Role         Role
	CreatedAt    time.Time
}

// NewUser creates a new User instance
func NewUser(id, handle, email, passwordHash, companyID string, role Role, createdAt time.Time) *User {
	return &User{
		ID:           id,
		Handle:       handle,
		Email:        email,
		PasswordHash: passwordHash,
		CompanyID:    companyID,
		Role:         role,
		CreatedAt:    createdAt,
	}
}

// ValidateUser validates a User instance
func ValidateUser(u *User) error {
	if u == nil {
		return fmt.Errorf("user cannot be nil")
	}

	if u.ID == "" {
		return fmt.Errorf("user ID is required")
	}

	if u.Handle == "" {
		return fmt.Errorf("user Handle is required")
	}

	if u.Email == "" {
		return fmt.Errorf("user Email is required")
	}

	if u.PasswordHash == "" {
		return fmt.Errorf("user PasswordHash is required")
	}

	if u.CompanyID == "" {
		return fmt.Errorf("user CompanyID is required")
	}

	if !isValidRole(u.Role) {
		return fmt.Errorf("user Role is invalid: %s", u.Role)
	}

	return nil
}

func isValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleCustomer:
		return true
	}
	return false
}

// Principal is the authenticated identity injected by the HTTP boundary.
// Role gating for chat variants operates on Principal, never on the shape
// of identifier strings.
type Principal struct {
	UserID    string
	Handle    string
	Email     string
	CompanyID string
	Role      Role
}
