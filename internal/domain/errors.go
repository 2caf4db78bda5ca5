package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
)

// Validation errors
var (
	ErrInvalidRole              = NewDomainError(ErrCodeValidation, "invalid user role")
	ErrInvalidCartItem          = NewDomainError(ErrCodeValidation, "cart item must reference exactly one of product or service")
	ErrInvalidEmbeddingJobState = NewDomainError(ErrCodeValidation, "invalid embedding job status")
	ErrMissingRequiredField     = NewDomainError(ErrCodeValidation, "missing required field")
)

// Not found errors
var (
	ErrCompanyNotFound  = NewDomainError(ErrCodeNotFound, "company not found")
	ErrUserNotFound     = NewDomainError(ErrCodeNotFound, "user not found")
	ErrProductNotFound  = NewDomainError(ErrCodeNotFound, "product not found")
	ErrServiceNotFound  = NewDomainError(ErrCodeNotFound, "service not found")
	ErrFAQNotFound      = NewDomainError(ErrCodeNotFound, "faq not found")
	ErrPolicyNotFound   = NewDomainError(ErrCodeNotFound, "policy not found")
	ErrCartItemNotFound = NewDomainError(ErrCodeNotFound, "cart item not found")
)

// Already exists errors
var (
	ErrCompanyAlreadyExists   = NewDomainError(ErrCodeAlreadyExists, "company already registered")
	ErrUserAlreadyExists      = NewDomainError(ErrCodeAlreadyExists, "user already registered")
	ErrUserEmailAlreadyExists = NewDomainError(ErrCodeAlreadyExists, "email already registered")
)

// Authorization errors
var (
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorized, "incorrect email or password")
	ErrInvalidToken       = NewDomainError(ErrCodeUnauthorized, "invalid or expired token")
	ErrRoleNotAllowed     = NewDomainError(ErrCodeForbidden, "operation not permitted for this role")
	ErrWrongCompany       = NewDomainError(ErrCodeForbidden, "resource is not owned by your company")
)

// Operation errors
var (
	ErrCartEmpty = NewDomainError(ErrCodeInvalidOperation, "cart is empty")
)
