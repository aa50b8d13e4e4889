package handler

import (
	"time"

	"github.com/marketloop/commerce-api/internal/core/ports"
)

// Response-only types owned by the transport layer, kept separate from
// domain types so the JSON contract is not coupled to internal changes.

type ownerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type productResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Stock       int           `json:"stock"`
	Images      []string      `json:"images"`
	Owner       ownerResponse `json:"owner"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func toProductResponse(v ports.ProductView) productResponse {
	images := v.Product.Images
	if images == nil {
		images = []string{}
	}
	return productResponse{
		ID:          v.Product.ID,
		Name:        v.Product.Name,
		Price:       v.Product.Price,
		Description: v.Product.Description,
		Category:    v.Product.Category,
		Stock:       v.Product.Stock,
		Images:      images,
		Owner:       ownerResponse{Name: v.Owner.Name, Email: v.Owner.Email},
		CreatedAt:   v.Product.CreatedAt.UTC(),
		UpdatedAt:   v.Product.UpdatedAt.UTC(),
	}
}

func toProductListResponse(views []ports.ProductView) []productResponse {
	out := make([]productResponse, len(views))
	for i, v := range views {
		out[i] = toProductResponse(v)
	}
	return out
}
