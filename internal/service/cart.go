package service

import (
	"context"
	"time"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/telemetry"
)

type CartRepositoryInterface interface {
	Create(ctx context.Context, item *domain.CartItem) error
	GetByID(ctx context.Context, id, userID string) (*domain.CartItem, error)
	GetByProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	GetByService(ctx context.Context, userID, serviceID string) (*domain.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, id, userID string, quantity int) error
	Delete(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// CartService handles the per-user shopping cart. Checkout runs in a
// transaction so the cart is cleared atomically.
type CartService struct {
	cartRepo    CartRepositoryInterface
	productRepo ProductRepositoryInterface
	serviceRepo ServiceRepositoryInterface
	txRunner    TxRunner
	uuidGen     UUIDGenerator
}

func NewCartService(
	cartRepo CartRepositoryInterface,
	productRepo ProductRepositoryInterface,
	serviceRepo ServiceRepositoryInterface,
	txRunner TxRunner,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		txRunner:    txRunner,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

type AddCartItemInput struct {
	ProductID *string
	ServiceID *string
	Quantity  int
}

// AddItem puts a product or service in the user's cart. Adding an item
// already in the cart increments its quantity instead.
func (s *CartService) AddItem(ctx context.Context, p domain.Principal, input AddCartItemInput) (*domain.CartItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "CartService.AddItem", telemetry.SpanAttributes{
		CompanyID: p.CompanyID,
		UserID:    p.UserID,
		Operation: "add",
	})
	defer span.End()

	if (input.ProductID == nil) == (input.ServiceID == nil) {
		return nil, domain.ErrInvalidCartItem
	}
	if input.Quantity <= 0 {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "quantity must be greater than 0")
	}

	// The referenced record must belong to the caller's company.
	var existing *domain.CartItem
	var err error
	if input.ProductID != nil {
		if _, err = s.productRepo.GetByID(ctx, *input.ProductID, p.CompanyID); err != nil {
			return nil, err
		}
		existing, err = s.cartRepo.GetByProduct(ctx, p.UserID, *input.ProductID)
	} else {
		if _, err = s.serviceRepo.GetByID(ctx, *input.ServiceID, p.CompanyID); err != nil {
			return nil, err
		}
		existing, err = s.cartRepo.GetByService(ctx, p.UserID, *input.ServiceID)
	}

	if err == nil && existing != nil {
		newQuantity := existing.Quantity + input.Quantity
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, p.UserID, newQuantity); err != nil {
			return nil, err
		}
		existing.Quantity = newQuantity
		return existing, nil
	}
	if err != nil && err != domain.ErrCartItemNotFound {
		return nil, err
	}

	item := &domain.CartItem{
		ID:        s.uuidGen.NewString(),
		UserID:    p.UserID,
		ProductID: input.ProductID,
		ServiceID: input.ServiceID,
		Quantity:  input.Quantity,
		AddedAt:   time.Now().UTC(),
	}

	if err := domain.ValidateCartItem(item); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the user's cart contents.
func (s *CartService) ListItems(ctx context.Context, p domain.Principal) ([]*domain.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, p.UserID)
}

// UpdateQuantity sets the quantity on an item the user owns.
func (s *CartService) UpdateQuantity(ctx context.Context, p domain.Principal, itemID string, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "quantity must be greater than 0")
	}

	item, err := s.cartRepo.GetByID(ctx, itemID, p.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpdateQuantity(ctx, itemID, p.UserID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem deletes an item the user owns.
func (s *CartService) RemoveItem(ctx context.Context, p domain.Principal, itemID string) error {
	return s.cartRepo.Delete(ctx, itemID, p.UserID)
}

// Checkout places the order and clears the cart. An empty cart is
// rejected. The read and the clear happen in one transaction.
func (s *CartService) Checkout(ctx context.Context, p domain.Principal) error {
	ctx, span := telemetry.StartSpan(ctx, "CartService.Checkout", telemetry.SpanAttributes{
		CompanyID: p.CompanyID,
		UserID:    p.UserID,
		Operation: "checkout",
	})
	defer span.End()

	return s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		carts := repos.Carts()

		items, err := carts.ListByUser(ctx, p.UserID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrCartEmpty
		}

		return carts.DeleteByUser(ctx, p.UserID)
	})
}
