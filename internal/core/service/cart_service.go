package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/ports"
)

// CartService implements the per-user cart. There is no optimistic
// concurrency check; concurrent mutations of the same cart rely on the
// store's per-document atomicity.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, log: log}
}

// Get loads the caller's cart with product references expanded, lazily
// creating an empty cart on first access.
func (s *CartService) Get(ctx context.Context, ownerID string) (*ports.CartView, error) {
	created := false
	cart, err := s.carts.FindByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrCartNotFound) {
		cart, err = s.carts.Save(ctx, emptyCart(ownerID))
		created = true
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}

	prods, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Items whose product has since been deleted are omitted from the view;
	// the stored cart is left untouched.
	items := make([]ports.CartItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		p, ok := prods[it.ProductID]
		if !ok {
			continue
		}
		items = append(items, ports.CartItemView{Product: *p, Quantity: it.Quantity})
	}

	return &ports.CartView{ID: cart.ID, Items: items, Created: created}, nil
}

// Add puts quantity units of a product into the caller's cart, incrementing
// the existing item when the product is already present.
func (s *CartService) Add(ctx context.Context, ownerID, productID string, quantity int) (*domain.Cart, error) {
	if err := validateItemInput(productID, quantity); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrCartNotFound) {
		cart = emptyCart(ownerID)
	} else if err != nil {
		return nil, err
	}

	if i := cart.Item(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: quantity})
	}

	saved, err := s.carts.Save(ctx, cart)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("owner_id", ownerID).Str("product_id", productID).Int("quantity", quantity).Msg("cart item added")
	return saved, nil
}

// UpdateQuantity overwrites the quantity of an item already in the cart.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (*domain.Cart, error) {
	if err := validateItemInput(productID, quantity); err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	i := cart.Item(productID)
	if i < 0 {
		return nil, domain.ErrItemNotFound
	}
	cart.Items[i].Quantity = quantity

	return s.carts.Save(ctx, cart)
}

// Remove drops the matching item. Removing a product that is not in the
// cart succeeds and leaves the cart unchanged.
func (s *CartService) Remove(ctx context.Context, ownerID, productID string) (*domain.Cart, error) {
	cart, err := s.carts.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept

	return s.carts.Save(ctx, cart)
}

// Clear empties the items collection; the cart document itself persists.
func (s *CartService) Clear(ctx context.Context, ownerID string) (*domain.Cart, error) {
	cart, err := s.carts.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cart.Items = []domain.CartItem{}
	return s.carts.Save(ctx, cart)
}

func emptyCart(ownerID string) *domain.Cart {
	return &domain.Cart{
		OwnerID:   ownerID,
		Items:     []domain.CartItem{},
		UpdatedAt: time.Now().UTC(),
	}
}

func validateItemInput(productID string, quantity int) error {
	if productID == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be a positive number", domain.ErrInvalidInput)
	}
	return nil
}
