package ports

import "context"

// ProductCache holds a short-lived copy of the public catalog listing.
// Cache failures are never fatal; callers fall through to the repository.
type ProductCache interface {
	// GetList returns the cached listing and whether it was present.
	GetList(ctx context.Context) ([]ProductView, bool, error)
	SetList(ctx context.Context, views []ProductView) error
	// Invalidate drops the cached listing after any product mutation.
	Invalidate(ctx context.Context) error
}
