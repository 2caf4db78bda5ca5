package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/service"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddItem(ctx context.Context, p domain.Principal, input service.AddCartItemInput) (*domain.CartItem, error) {
	args := m.Called(ctx, p, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartService) ListItems(ctx context.Context, p domain.Principal) ([]*domain.CartItem, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, p domain.Principal, itemID string, quantity int) (*domain.CartItem, error) {
	args := m.Called(ctx, p, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, p domain.Principal, itemID string) error {
	args := m.Called(ctx, p, itemID)
	return args.Error(0)
}

func (m *MockCartService) Checkout(ctx context.Context, p domain.Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func newTestCartItem() *domain.CartItem {
	productID := "product-1"
	return &domain.CartItem{
		ID:        "item-1",
		UserID:    "user-1",
		ProductID: &productID,
		Quantity:  2,
		AddedAt:   time.Now().UTC(),
	}
}

func TestCartHandler_AddItem_Success(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := NewCartHandler(mockSvc)

	mockSvc.On("AddItem", mock.Anything, mock.Anything, mock.MatchedBy(func(input service.AddCartItemInput) bool {
		return input.ProductID != nil && *input.ProductID == "product-1" && input.Quantity == 2
	})).Return(newTestCartItem(), nil)

	body := `{"product_id":"product-1","quantity":2}`
	req := requestWithPrincipal(http.MethodPost, "/cart/items", []byte(body), testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.AddItem(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "item-1", data["id"])
	assert.Equal(t, float64(2), data["quantity"])
	mockSvc.AssertExpectations(t)
}

func TestCartHandler_AddItem_ZeroQuantity(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := NewCartHandler(mockSvc)

	body := `{"product_id":"product-1","quantity":0}`
	req := requestWithPrincipal(http.MethodPost, "/cart/items", []byte(body), testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.AddItem(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must be greater than 0")
	mockSvc.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartHandler_AddItem_BothReferences(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := NewCartHandler(mockSvc)

	mockSvc.On("AddItem", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCartItem)

	body := `{"product_id":"product-1","service_id":"service-1","quantity":1}`
	req := requestWithPrincipal(http.MethodPost, "/cart/items", []byte(body), testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.AddItem(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exactly one of product or service")
}

func TestCartHandler_ListItems(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := NewCartHandler(mockSvc)

	mockSvc.On("ListItems", mock.Anything, mock.Anything).Return([]*domain.CartItem{newTestCartItem()}, nil)

	req := requestWithPrincipal(http.MethodGet, "/cart/items", nil, testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.ListItems(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	assert.Len(t, items, 1)
}

func TestCartHandler_UpdateQuantity_Success(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := NewCartHandler(mockSvc)

	updated := newTestCartItem()
	updated.Quantity = 5
	mockSvc.On("UpdateQuantity", mock.Anything, mock.Anything, "item-1", 5).Return(updated, nil)

	body := `{"quantity":5}`
	req := requestWithPrincipal(http.MethodPut, "/cart/items/item-1", []byte(body), testPrincipal(domain.RoleCustomer))
	req = withURLParam(req, "id", "item-1")
	w := httptest.NewRecorder()

	handler.UpdateQuantity(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(5), data["quantity"])
}

func TestCartHandler_RemoveItem_NotFound(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := NewCartHandler(mockSvc)

	mockSvc.On("RemoveItem", mock.Anything, mock.Anything, "missing").Return(domain.ErrCartItemNotFound)

	req := requestWithPrincipal(http.MethodDelete, "/cart/items/missing", nil, testPrincipal(domain.RoleCustomer))
	req = withURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	handler.RemoveItem(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_Checkout_Success(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := NewCartHandler(mockSvc)

	mockSvc.On("Checkout", mock.Anything, mock.Anything).Return(nil)

	req := requestWithPrincipal(http.MethodPost, "/cart/checkout", nil, testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Contains(t, data["message"], "order has been placed")
}

func TestCartHandler_Checkout_EmptyCart(t *testing.T) {
	mockSvc := new(MockCartService)
	handler := NewCartHandler(mockSvc)

	mockSvc.On("Checkout", mock.Anything, mock.Anything).Return(domain.ErrCartEmpty)

	req := requestWithPrincipal(http.MethodPost, "/cart/checkout", nil, testPrincipal(domain.RoleCustomer))
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}
