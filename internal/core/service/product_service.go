package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/ports"
)

// ProductService implements catalog CRUD. Mutations run the ownership guard
// after the product is loaded, so a missing product is reported as not
// found rather than not authorized.
type ProductService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	cache    ports.ProductCache
	log      zerolog.Logger
}

func NewProductService(products ports.ProductRepository, users ports.UserRepository, cache ports.ProductCache, log zerolog.Logger) *ProductService {
	return &ProductService{products: products, users: users, cache: cache, log: log}
}

// Create persists a new product owned by the caller. Stock defaults to 0.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if input.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		Stock:       input.Stock,
		Images:      input.Images,
		OwnerID:     input.OwnerID,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.log.Info().Str("product_id", created.ID).Str("owner_id", input.OwnerID).Msg("product created")
	return created, nil
}

// Update applies a partial update after the ownership guard. It returns
// false when nothing was present in the request.
func (s *ProductService) Update(ctx context.Context, productID string, actor ports.Actor, input ports.UpdateProductInput) (bool, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if !actor.CanMutate(product.OwnerID) {
		return false, domain.ErrForbidden
	}

	update := ports.ProductUpdate{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		Stock:       input.Stock,
		Images:      input.Images,
	}
	if update.Empty() {
		return false, nil
	}
	if update.Price != nil && *update.Price < 0 {
		return false, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if update.Stock != nil && *update.Stock < 0 {
		return false, fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}

	if err := s.products.Update(ctx, productID, update); err != nil {
		return false, err
	}

	s.invalidateCatalog(ctx)
	s.log.Info().Str("product_id", productID).Str("actor_id", actor.UserID).Msg("product updated")
	return true, nil
}

// Delete removes a product after the ownership guard.
func (s *ProductService) Delete(ctx context.Context, productID string, actor ports.Actor) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !actor.CanMutate(product.OwnerID) {
		return domain.ErrForbidden
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	s.log.Info().Str("product_id", productID).Str("actor_id", actor.UserID).Msg("product deleted")
	return nil
}

// List returns the public catalog with each owner expanded to {name, email}.
// The listing is served from cache when fresh.
func (s *ProductService) List(ctx context.Context) ([]ports.ProductView, error) {
	if views, ok, err := s.cache.GetList(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache read failed, querying store")
	} else if ok {
		return views, nil
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.OwnerID]; !dup {
			seen[p.OwnerID] = struct{}{}
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ports.ProductView{Product: *p, Owner: ownerSummary(owners[p.OwnerID])})
	}

	if err := s.cache.SetList(ctx, views); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache write failed")
	}
	return views, nil
}

// Get returns one product with its owner expanded.
func (s *ProductService) Get(ctx context.Context, productID string) (*ports.ProductView, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, product.OwnerID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	return &ports.ProductView{Product: *product, Owner: ownerSummary(owner)}, nil
}

func (s *ProductService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

// ownerSummary tolerates a deleted owner: the product stays readable with
// an empty owner block.
func ownerSummary(u *domain.User) domain.OwnerSummary {
	if u == nil {
		return domain.OwnerSummary{}
	}
	return domain.OwnerSummary{Name: u.Name, Email: u.Email}
}
