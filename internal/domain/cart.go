package domain

import (
	"fmt"
	"time"
)

// CartItem is one line in a user's shopping cart. Exactly one of ProductID
// or ServiceID is set.
type CartItem struct {
	ID        string
	UserID    string
	ProductID *string
	ServiceID *string
	Quantity  int
	AddedAt   time.Time
}

// NewProductCartItem creates a cart item referencing a product
func NewProductCartItem(id, userID, productID string, quantity int, addedAt time.Time) *CartItem {
	return &CartItem{
		ID:        id,
		UserID:    userID,
		ProductID: &productID,
		Quantity:  quantity,
		AddedAt:   addedAt,
	}
}

// NewServiceCartItem creates a cart item referencing a service
func NewServiceCartItem(id, userID, serviceID string, quantity int, addedAt time.Time) *CartItem {
	return &CartItem{
		ID:        id,
		UserID:    userID,
		ServiceID: &serviceID,
		Quantity:  quantity,
		AddedAt:   addedAt,
	}
}

// ValidateCartItem validates a CartItem instance
func ValidateCartItem(i *CartItem) error {
	if i == nil {
		return fmt.Errorf("cart item cannot be nil")
	}
	if i.ID == "" {
		return fmt.Errorf("cart item ID is required")
	}
	if i.UserID == "" {
		return fmt.Errorf("cart item UserID is required")
	}
	if (i.ProductID == nil) == (i.ServiceID == nil) {
		return ErrInvalidCartItem
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("cart item Quantity must be greater than 0")
	}
	return nil
}
