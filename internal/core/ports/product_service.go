package ports

import (
	"context"

	"github.com/marketloop/commerce-api/internal/core/domain"
)

// Actor is the authenticated identity resolved by the auth middleware,
// passed into every guarded operation.
type Actor struct {
	UserID string
	Role   string
}

// CanMutate implements the ownership guard: a resource may be mutated only
// by its owner or by an admin.
func (a Actor) CanMutate(ownerID string) bool {
	return a.UserID == ownerID || a.Role == domain.RoleAdmin
}

// CreateProductInput carries all data needed to create a catalog item.
// Images are the stored file paths, in upload order.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	Stock       int
	Images      []string
	OwnerID     string
}

// UpdateProductInput is a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	Stock       *int
	Images      []string
}

// ProductView is a product with its owner expanded for public reads.
type ProductView struct {
	Product domain.Product
	Owner   domain.OwnerSummary
}

// ProductService defines the catalog use cases.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	// Update applies a partial update after the ownership guard. It returns
	// false when the request contained no changes to apply.
	Update(ctx context.Context, productID string, actor Actor, input UpdateProductInput) (bool, error)
	Delete(ctx context.Context, productID string, actor Actor) error
	List(ctx context.Context) ([]ProductView, error)
	Get(ctx context.Context, productID string) (*ProductView, error)
}
