package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// ValidRole reports whether r is one of the known account roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleSeller || r == RoleBuyer
}

// SellerProfile carries the fields that are mandatory only for accounts
// with the seller role. Phone must be "+" followed by 10–15 digits.
type SellerProfile struct {
	StoreName    string `json:"store_name"`
	IDNumber     string `json:"id_number"`
	PhotoID      string `json:"photo_id"`
	LivePhoto    string `json:"live_photo"`
	Country      string `json:"country"`
	StoreAddress string `json:"store_address"`
	Phone        string `json:"phone"`
}

// User models an account in the marketplace. Seller is nil for any role
// other than seller.
type User struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Role         string         `json:"role"`
	Seller       *SellerProfile `json:"seller_profile,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
