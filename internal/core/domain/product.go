package domain

import "time"

// Product is a sellable catalog item. OwnerID references the admin or
// seller account that created it; only the owner or an admin may mutate it.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerSummary is the public view of a product owner exposed on catalog reads.
type OwnerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
