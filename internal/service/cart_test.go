package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/supportdesk/internal/domain"
)

func newTestCartService(cartRepo *MockCartRepository, productRepo *MockProductRepository, serviceRepo *MockServiceRepository) *CartService {
	txRunner := &mockTxRunner{repos: &mockTxRepositories{carts: cartRepo}}
	svc := NewCartService(cartRepo, productRepo, serviceRepo, txRunner)
	mockUUID := new(MockUUIDGenerator)
	mockUUID.On("NewString").Return("generated-id")
	svc.uuidGen = mockUUID
	return svc
}

func customerPrincipal() domain.Principal {
	return domain.Principal{
		UserID:    "user-1",
		Handle:    "jdoe",
		CompanyID: "company-1",
		Role:      domain.RoleCustomer,
	}
}

func strptr(s string) *string { return &s }

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	p := customerPrincipal()

	t.Run("adds new product item", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo, new(MockServiceRepository))

		productRepo.On("GetByID", ctx, "p1", "company-1").Return(&domain.Product{ID: "p1"}, nil)
		cartRepo.On("GetByProduct", ctx, "user-1", "p1").Return(nil, domain.ErrCartItemNotFound)
		cartRepo.On("Create", ctx, mock.MatchedBy(func(item *domain.CartItem) bool {
			return item.UserID == "user-1" && item.ProductID != nil && *item.ProductID == "p1" && item.Quantity == 2
		})).Return(nil)

		item, err := svc.AddItem(ctx, p, AddCartItemInput{ProductID: strptr("p1"), Quantity: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
		cartRepo.AssertExpectations(t)
	})

	t.Run("increments quantity for existing product item", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo, new(MockServiceRepository))

		existing := &domain.CartItem{ID: "item-1", UserID: "user-1", ProductID: strptr("p1"), Quantity: 1}
		productRepo.On("GetByID", ctx, "p1", "company-1").Return(&domain.Product{ID: "p1"}, nil)
		cartRepo.On("GetByProduct", ctx, "user-1", "p1").Return(existing, nil)
		cartRepo.On("UpdateQuantity", ctx, "item-1", "user-1", 3).Return(nil)

		item, err := svc.AddItem(ctx, p, AddCartItemInput{ProductID: strptr("p1"), Quantity: 2})

		require.NoError(t, err)
		assert.Equal(t, "item-1", item.ID)
		assert.Equal(t, 3, item.Quantity)
		cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("adds service item", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		serviceRepo := new(MockServiceRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository), serviceRepo)

		serviceRepo.On("GetByID", ctx, "s1", "company-1").Return(&domain.Service{ID: "s1"}, nil)
		cartRepo.On("GetByService", ctx, "user-1", "s1").Return(nil, domain.ErrCartItemNotFound)
		cartRepo.On("Create", ctx, mock.AnythingOfType("*domain.CartItem")).Return(nil)

		item, err := svc.AddItem(ctx, p, AddCartItemInput{ServiceID: strptr("s1"), Quantity: 1})

		require.NoError(t, err)
		require.NotNil(t, item.ServiceID)
		assert.Equal(t, "s1", *item.ServiceID)
	})

	t.Run("rejects both product and service", func(t *testing.T) {
		svc := newTestCartService(new(MockCartRepository), new(MockProductRepository), new(MockServiceRepository))

		_, err := svc.AddItem(ctx, p, AddCartItemInput{ProductID: strptr("p1"), ServiceID: strptr("s1"), Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidCartItem)
	})

	t.Run("rejects neither product nor service", func(t *testing.T) {
		svc := newTestCartService(new(MockCartRepository), new(MockProductRepository), new(MockServiceRepository))

		_, err := svc.AddItem(ctx, p, AddCartItemInput{Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidCartItem)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		svc := newTestCartService(new(MockCartRepository), new(MockProductRepository), new(MockServiceRepository))

		_, err := svc.AddItem(ctx, p, AddCartItemInput{ProductID: strptr("p1"), Quantity: 0})
		assert.Error(t, err)
	})

	t.Run("rejects product from another company", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo, new(MockServiceRepository))

		productRepo.On("GetByID", ctx, "p1", "company-1").Return(nil, domain.ErrProductNotFound)

		_, err := svc.AddItem(ctx, p, AddCartItemInput{ProductID: strptr("p1"), Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateCartQuantity(t *testing.T) {
	ctx := context.Background()
	p := customerPrincipal()

	t.Run("updates quantity on owned item", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository), new(MockServiceRepository))

		item := &domain.CartItem{ID: "item-1", UserID: "user-1", ProductID: strptr("p1"), Quantity: 1}
		cartRepo.On("GetByID", ctx, "item-1", "user-1").Return(item, nil)
		cartRepo.On("UpdateQuantity", ctx, "item-1", "user-1", 5).Return(nil)

		got, err := svc.UpdateQuantity(ctx, p, "item-1", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc := newTestCartService(new(MockCartRepository), new(MockProductRepository), new(MockServiceRepository))

		_, err := svc.UpdateQuantity(ctx, p, "item-1", 0)
		assert.Error(t, err)
	})

	t.Run("propagates not found for foreign item", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository), new(MockServiceRepository))

		cartRepo.On("GetByID", ctx, "item-1", "user-1").Return(nil, domain.ErrCartItemNotFound)

		_, err := svc.UpdateQuantity(ctx, p, "item-1", 2)
		assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	p := customerPrincipal()

	t.Run("clears cart with items", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository), new(MockServiceRepository))

		items := []*domain.CartItem{
			{ID: "item-1", UserID: "user-1", ProductID: strptr("p1"), Quantity: 1},
		}
		cartRepo.On("ListByUser", ctx, "user-1").Return(items, nil)
		cartRepo.On("DeleteByUser", ctx, "user-1").Return(nil)

		err := svc.Checkout(ctx, p)
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository), new(MockServiceRepository))

		cartRepo.On("ListByUser", ctx, "user-1").Return([]*domain.CartItem{}, nil)

		err := svc.Checkout(ctx, p)
		assert.ErrorIs(t, err, domain.ErrCartEmpty)
		cartRepo.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
	})
}
