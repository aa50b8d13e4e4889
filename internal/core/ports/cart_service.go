package ports

import (
	"context"

	"github.com/marketloop/commerce-api/internal/core/domain"
)

// CartItemView is a cart entry with its product reference expanded.
type CartItemView struct {
	Product  domain.Product
	Quantity int
}

// CartView is the expanded cart returned by Get. Created distinguishes the
// lazily-created empty cart from a pre-existing one.
type CartView struct {
	ID      string
	Items   []CartItemView
	Created bool
}

// CartService defines cart use cases. Every operation is scoped to the
// requesting user's own cart.
type CartService interface {
	// Get loads the caller's cart, creating an empty one on first access.
	Get(ctx context.Context, ownerID string) (*CartView, error)
	// Add increments the quantity when the product is already in the cart,
	// otherwise appends a new item.
	Add(ctx context.Context, ownerID, productID string, quantity int) (*domain.Cart, error)
	// UpdateQuantity overwrites the quantity of an existing item.
	UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (*domain.Cart, error)
	// Remove drops the matching item; removing an absent item is a no-op.
	Remove(ctx context.Context, ownerID, productID string) (*domain.Cart, error)
	// Clear empties the items collection; the cart document persists.
	Clear(ctx context.Context, ownerID string) (*domain.Cart, error)
}
