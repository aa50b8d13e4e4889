package ports

import (
	"context"

	"github.com/marketloop/commerce-api/internal/core/domain"
)

// ProductUpdate describes a partial update. Nil pointers mean "leave the
// field untouched"; a nil Images slice keeps the existing image set, a
// non-nil one replaces it wholesale.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	Stock       *int
	Images      []string
}

// Empty reports whether the update would change nothing.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Description == nil &&
		u.Category == nil && u.Stock == nil && u.Images == nil
}

// ProductRepository defines persistence operations for catalog items.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByIDs returns the products matching ids, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) error
	Delete(ctx context.Context, id string) error
}
