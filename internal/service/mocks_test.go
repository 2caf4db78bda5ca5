package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/pagination"
)

// MockUUIDGenerator is a mock UUID generator for deterministic tests
type MockUUIDGenerator struct {
	mock.Mock
}

func (m *MockUUIDGenerator) NewString() string {
	args := m.Called()
	return args.String(0)
}

// MockCompanyRepository is a mock implementation of CompanyRepositoryInterface
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateLogoKey(ctx context.Context, id, logoKey string) error {
	args := m.Called(ctx, id, logoKey)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.User, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepositoryInterface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id, companyID string) (*domain.Product, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*ProductPageResult, error) {
	args := m.Called(ctx, companyID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductPageResult), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id, companyID string) error {
	args := m.Called(ctx, id, companyID)
	return args.Error(0)
}

// MockServiceRepository is a mock implementation of ServiceRepositoryInterface
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id, companyID string) (*domain.Service, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*ServicePageResult, error) {
	args := m.Called(ctx, companyID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ServicePageResult), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id, companyID string) error {
	args := m.Called(ctx, id, companyID)
	return args.Error(0)
}

// MockFAQRepository is a mock implementation of FAQRepositoryInterface
type MockFAQRepository struct {
	mock.Mock
}

func (m *MockFAQRepository) Create(ctx context.Context, f *domain.FAQ) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFAQRepository) GetByID(ctx context.Context, id, companyID string) (*domain.FAQ, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FAQ), args.Error(1)
}

func (m *MockFAQRepository) ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*FAQPageResult, error) {
	args := m.Called(ctx, companyID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FAQPageResult), args.Error(1)
}

func (m *MockFAQRepository) Update(ctx context.Context, f *domain.FAQ) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFAQRepository) Delete(ctx context.Context, id, companyID string) error {
	args := m.Called(ctx, id, companyID)
	return args.Error(0)
}

// MockPolicyRepository is a mock implementation of PolicyRepositoryInterface
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) Create(ctx context.Context, p *domain.Policy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPolicyRepository) GetByID(ctx context.Context, id, companyID string) (*domain.Policy, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}

func (m *MockPolicyRepository) ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*PolicyPageResult, error) {
	args := m.Called(ctx, companyID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PolicyPageResult), args.Error(1)
}

func (m *MockPolicyRepository) Update(ctx context.Context, p *domain.Policy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPolicyRepository) Delete(ctx context.Context, id, companyID string) error {
	args := m.Called(ctx, id, companyID)
	return args.Error(0)
}

// MockEmbeddingJobRepository is a mock implementation of EmbeddingJobRepositoryInterface
type MockEmbeddingJobRepository struct {
	mock.Mock
}

func (m *MockEmbeddingJobRepository) Create(ctx context.Context, job *domain.EmbeddingJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of CartRepositoryInterface
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) GetByID(ctx context.Context, id, userID string) (*domain.CartItem, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) GetByProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) GetByService(ctx context.Context, userID, serviceID string) (*domain.CartItem, error) {
	args := m.Called(ctx, userID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, id, userID string, quantity int) error {
	args := m.Called(ctx, id, userID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmbeddingClient is a mock implementation of EmbeddingClient
type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// mockTxRepositories hands back the test's mock repositories inside WithTx.
type mockTxRepositories struct {
	users UserRepositoryInterface
	carts CartRepositoryInterface
	jobs  EmbeddingJobRepositoryInterface
}

func (r *mockTxRepositories) Users() UserRepositoryInterface                 { return r.users }
func (r *mockTxRepositories) Carts() CartRepositoryInterface                 { return r.carts }
func (r *mockTxRepositories) EmbeddingJobs() EmbeddingJobRepositoryInterface { return r.jobs }

// mockTxRunner runs the transaction function directly against the given repositories.
type mockTxRunner struct {
	repos TxRepositories
}

func (r *mockTxRunner) WithTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	return fn(r.repos)
}
