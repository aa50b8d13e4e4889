package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/ports"
)

// sellerPhonePattern: "+" followed by a country code and number, 10–15 digits.
var sellerPhonePattern = regexp.MustCompile(`^\+\d{10,15}$`)

// AuthService implements registration, login, and the admin-only user
// management operations.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register hashes the password and persists a new account. It does not log
// the user in.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleBuyer
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	var seller *domain.SellerProfile
	if role == domain.RoleSeller {
		if err := validateSellerProfile(input.Seller); err != nil {
			return nil, err
		}
		seller = input.Seller
	}

	// The unique index on email is the real guard; this early check just
	// avoids a pointless bcrypt round for the common duplicate case.
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Seller:       seller,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", role).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a token. An unknown email is
// reported as ErrUserNotFound, a password mismatch as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return token, user, nil
}

// ListUsers returns all accounts. Password hashes never serialize.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// UpdateUserRole replaces a user's role (admin only, enforced upstream).
func (s *AuthService) UpdateUserRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("role", role).Msg("user role updated")
	return updated, nil
}

// DeleteUser removes an account (admin only, enforced upstream).
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

// validateSellerProfile enforces the seller-only required fields.
func validateSellerProfile(p *domain.SellerProfile) error {
	if p == nil {
		return fmt.Errorf("%w: seller profile is required for sellers", domain.ErrInvalidInput)
	}

	required := map[string]string{
		"store_name":    p.StoreName,
		"id_number":     p.IDNumber,
		"photo_id":      p.PhotoID,
		"live_photo":    p.LivePhoto,
		"country":       p.Country,
		"store_address": p.StoreAddress,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s is required for sellers", domain.ErrInvalidInput, field)
		}
	}

	if !sellerPhonePattern.MatchString(p.Phone) {
		return fmt.Errorf("%w: phone must be + followed by 10 to 15 digits", domain.ErrInvalidInput)
	}
	return nil
}
