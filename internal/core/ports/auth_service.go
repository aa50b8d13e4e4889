package ports

import (
	"context"

	"github.com/marketloop/commerce-api/internal/core/domain"
)

// RegisterInput carries all data needed to create an account. Seller is
// required when Role is "seller" and ignored otherwise.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // defaults to buyer when empty
	Seller   *domain.SellerProfile
}

// AuthService covers the credential lifecycle plus the admin-only user
// management operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed token and the user record on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUserRole(ctx context.Context, userID, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}
