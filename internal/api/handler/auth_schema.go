package handler

import "github.com/marketloop/commerce-api/internal/core/domain"

// messageResponse is the envelope used for plain confirmation responses and
// all 4xx/5xx errors.
type messageResponse struct {
	Message string `json:"message"`
}

type sellerProfileRequest struct {
	StoreName    string `json:"store_name"    validate:"required"`
	IDNumber     string `json:"id_number"     validate:"required"`
	PhotoID      string `json:"photo_id"      validate:"required"`
	LivePhoto    string `json:"live_photo"    validate:"required"`
	Country      string `json:"country"       validate:"required"`
	StoreAddress string `json:"store_address" validate:"required"`
	Phone        string `json:"phone"         validate:"required,intlphone"`
}

type registerRequest struct {
	Name     string                `json:"name"     validate:"required"`
	Email    string                `json:"email"    validate:"required,email"`
	Password string                `json:"password" validate:"required"`
	Role     string                `json:"role"     validate:"omitempty,oneof=admin seller buyer"`
	Seller   *sellerProfileRequest `json:"seller_profile" validate:"required_if=Role seller"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin seller buyer"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

func toSellerProfile(r *sellerProfileRequest) *domain.SellerProfile {
	if r == nil {
		return nil
	}
	return &domain.SellerProfile{
		StoreName:    r.StoreName,
		IDNumber:     r.IDNumber,
		PhotoID:      r.PhotoID,
		LivePhoto:    r.LivePhoto,
		Country:      r.Country,
		StoreAddress: r.StoreAddress,
		Phone:        r.Phone,
	}
}
