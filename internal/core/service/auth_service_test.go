package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/ports"
)

func registerInput(email, role string) ports.RegisterInput {
	return ports.RegisterInput{Name: "Test User", Email: email, Password: "pass123", Role: role}
}

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubIssuer struct {
	token string
	err   error
}

func (s *stubIssuer) Issue(string, string) (string, error) {
	return s.token, s.err
}

func validSellerProfile() *domain.SellerProfile {
	return &domain.SellerProfile{
		StoreName:    "Alice's Emporium",
		IDNumber:     "AB123456",
		PhotoID:      "photo-id.jpg",
		LivePhoto:    "live.jpg",
		Country:      "US",
		StoreAddress: "1 Market St",
		Phone:        "+15551234567",
	}
}

func TestAuthService_Register_DefaultsToBuyer(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubIssuer{token: "tok"}, zerolog.Nop())

	user, err := svc.Register(context.Background(), registerInput("alice@example.com", ""))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleBuyer {
		t.Fatalf("expected buyer role, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubIssuer{token: "tok"}, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("", "")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubIssuer{token: "tok"}, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", "superuser")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubIssuer{token: "tok"}, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("dup@example.com", "")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("dup@example.com", "")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_SellerRequiresProfile(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubIssuer{token: "tok"}, zerolog.Nop())

	input := registerInput("seller@example.com", domain.RoleSeller)
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing seller profile, got %v", err)
	}

	input.Seller = validSellerProfile()
	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Seller == nil || user.Seller.StoreName != "Alice's Emporium" {
		t.Fatalf("expected seller profile to be stored, got %+v", user.Seller)
	}
}

func TestAuthService_Register_SellerPhoneFormat(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubIssuer{token: "tok"}, zerolog.Nop())

	input := registerInput("seller@example.com", domain.RoleSeller)
	input.Seller = validSellerProfile()
	input.Seller.Phone = "12345"

	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short phone, got %v", err)
	}
}

func TestAuthService_Register_BuyerIgnoresSellerProfile(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubIssuer{token: "tok"}, zerolog.Nop())

	input := registerInput("buyer@example.com", domain.RoleBuyer)
	input.Seller = validSellerProfile()

	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Seller != nil {
		t.Fatalf("expected seller profile to be dropped for buyers, got %+v", user.Seller)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubIssuer{token: "signed-token"}, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("carol@example.com", "")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "signed-token" {
		t.Fatalf("unexpected token: %s", token)
	}
	if user == nil || user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubIssuer{token: "tok"}, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("dave@example.com", "")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubIssuer{token: "tok"}, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_UpdateUserRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubIssuer{token: "tok"}, zerolog.Nop())

	user, err := svc.Register(context.Background(), registerInput("erin@example.com", ""))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateUserRole(context.Background(), user.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateUserRole returned error: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", updated.Role)
	}

	if _, err := svc.UpdateUserRole(context.Background(), user.ID, "superuser"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestAuthService_DeleteUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubIssuer{token: "tok"}, zerolog.Nop())

	user, err := svc.Register(context.Background(), registerInput("frank@example.com", ""))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
