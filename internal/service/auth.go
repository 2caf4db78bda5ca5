package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/telemetry"
)

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

// NewString generates a new UUID string
func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

type CompanyRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
	GetByEmail(ctx context.Context, email string) (*domain.Company, error)
	UpdateLogoKey(ctx context.Context, id, logoKey string) error
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.User, error)
}

// AuthService handles company/user registration, login, and token
// verification.
type AuthService struct {
	companyRepo CompanyRepositoryInterface
	userRepo    UserRepositoryInterface
	jwtSecret   []byte
	tokenTTL    time.Duration
	uuidGen     UUIDGenerator
	now         func() time.Time
}

func NewAuthService(companyRepo CompanyRepositoryInterface, userRepo UserRepositoryInterface, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		uuidGen:     &DefaultUUIDGenerator{},
		now:         time.Now,
	}
}

type RegisterCompanyInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	Website     string
	Industry    string
	Description string
}

// RegisterCompany creates a company with a normalized (lowercased) unique
// name and a bcrypt-hashed password.
func (s *AuthService) RegisterCompany(ctx context.Context, input RegisterCompanyInput) (*domain.Company, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.RegisterCompany", telemetry.SpanAttributes{
		Operation: "register_company",
	})
	defer span.End()

	if input.Name == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "company name is required")
	}
	if input.Email == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "company email is required")
	}
	if input.Password == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "password is required")
	}

	name := domain.NormalizeCompanyName(input.Name)

	if _, err := s.companyRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrCompanyAlreadyExists
	} else if !errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, err
	}
	if _, err := s.companyRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrCompanyAlreadyExists
	} else if !errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to hash password", err)
	}

	company := domain.NewCompany(s.uuidGen.NewString(), name, input.Email, string(hash), s.now().UTC())
	company.Phone = input.Phone
	company.Website = input.Website
	company.Industry = input.Industry
	company.Description = input.Description

	if err := domain.ValidateCompany(company); err != nil {
		return nil, err
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompanyByName looks up a company by its normalized name.
func (s *AuthService) GetCompanyByName(ctx context.Context, name string) (*domain.Company, error) {
	return s.companyRepo.GetByName(ctx, domain.NormalizeCompanyName(name))
}

type RegisterUserInput struct {
	Handle      string
	Email       string
	Password    string
	CompanyName string
	Role        string
}

// RegisterUser creates a user under an existing company. The handle and
// email must both be unique.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.RegisterUser", telemetry.SpanAttributes{
		Operation: "register_user",
	})
	defer span.End()

	if input.Handle == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "user handle is required")
	}
	if input.Email == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "email is required")
	}
	if input.Password == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "password is required")
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByName(ctx, domain.NormalizeCompanyName(input.CompanyName))
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByHandle(ctx, input.Handle); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to hash password", err)
	}

	user := domain.NewUser(s.uuidGen.NewString(), input.Handle, input.Email, string(hash), company.ID, role, s.now().UTC())

	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type LoginOutput struct {
	AccessToken string
	TokenType   string
	Role        domain.Role
}

type tokenClaims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Login verifies credentials and issues an HS256 JWT with the user's
// identity claims.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.Login", telemetry.SpanAttributes{
		Operation: "login",
	})
	defer span.End()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	claims := tokenClaims{
		UserID:    user.Handle,
		CompanyID: user.CompanyID,
		Role:      string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to sign token", err)
	}

	return &LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role,
	}, nil
}

// VerifyToken parses and validates a JWT and resolves it to the current
// user as a Principal.
func (s *AuthService) VerifyToken(ctx context.Context, tokenStr string) (*domain.Principal, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	// Resolve against the database so revoked or deleted users fail fast.
	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{
		UserID:    user.ID,
		Handle:    user.Handle,
		Email:     user.Email,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, nil
}

// ListUsers returns every user belonging to a company.
func (s *AuthService) ListUsers(ctx context.Context, companyID string) ([]*domain.User, error) {
	if companyID == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "company ID is required")
	}
	return s.userRepo.ListByCompany(ctx, companyID)
}
