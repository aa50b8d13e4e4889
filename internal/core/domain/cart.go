package domain

import "time"

// CartItem pairs a product reference with a positive quantity. A product
// appears at most once among a cart's items.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds one user's pending purchase intent. There is at most one cart
// per user; it is created lazily and persists even when emptied.
type Cart struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Item returns the index of the item holding productID, or -1.
func (c *Cart) Item(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
