package handler

import (
	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/ports"
)

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type cartItemViewResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
}

type cartViewResponse struct {
	Message string                 `json:"message,omitempty"`
	ID      string                 `json:"id"`
	Items   []cartItemViewResponse `json:"items"`
}

// cartResponse is returned by mutations: the stored cart with raw product
// references, matching what was persisted.
type cartResponse struct {
	Message string       `json:"message"`
	Cart    *domain.Cart `json:"cart"`
}

func toCartViewResponse(v *ports.CartView) cartViewResponse {
	items := make([]cartItemViewResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = cartItemViewResponse{
			Product:  toProductResponse(ports.ProductView{Product: it.Product}),
			Quantity: it.Quantity,
		}
	}

	resp := cartViewResponse{ID: v.ID, Items: items}
	if v.Created {
		resp.Message = "new cart created"
	}
	return resp
}
