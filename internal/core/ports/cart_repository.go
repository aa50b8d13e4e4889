package ports

import (
	"context"

	"github.com/marketloop/commerce-api/internal/core/domain"
)

// CartRepository defines persistence for per-user carts. Carts are keyed by
// owner; the underlying store guarantees at most one cart per user.
type CartRepository interface {
	// FindByOwner returns the owner's cart or domain.ErrCartNotFound.
	FindByOwner(ctx context.Context, ownerID string) (*domain.Cart, error)
	// Save upserts the cart keyed on its owner and returns the stored copy.
	Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
}
