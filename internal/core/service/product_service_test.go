package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/ports"
)

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	copy := cloneProduct(p)
	copy.ID = fmt.Sprintf("prod_%d", r.nextID)
	r.products[copy.ID] = cloneProduct(copy)
	return copy, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	out := make(map[string]*domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = cloneProduct(p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, update ports.ProductUpdate) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Category != nil {
		p.Category = *update.Category
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}
	if update.Images != nil {
		p.Images = update.Images
	}
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type stubCatalogCache struct {
	views       []ports.ProductView
	cached      bool
	invalidated int
}

func (c *stubCatalogCache) GetList(context.Context) ([]ports.ProductView, bool, error) {
	if !c.cached {
		return nil, false, nil
	}
	return c.views, true, nil
}

func (c *stubCatalogCache) SetList(_ context.Context, views []ports.ProductView) error {
	c.views = views
	c.cached = true
	return nil
}

func (c *stubCatalogCache) Invalidate(context.Context) error {
	c.views = nil
	c.cached = false
	c.invalidated++
	return nil
}

func newProductService() (*ProductService, *stubProductRepo, *stubUserRepo, *stubCatalogCache) {
	products := newStubProductRepo()
	users := newStubUserRepo()
	cache := &stubCatalogCache{}
	return NewProductService(products, users, cache, zerolog.Nop()), products, users, cache
}

func strptr(s string) *string { return &s }

func floatptr(f float64) *float64 { return &f }

func intptr(i int) *int { return &i }

func TestProductService_Create(t *testing.T) {
	svc, _, _, cache := newProductService()

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:    "Mechanical Keyboard",
		Price:   89.99,
		Stock:   10,
		OwnerID: "seller_1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.OwnerID != "seller_1" {
		t.Fatalf("unexpected owner: %s", created.OwnerID)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected one cache invalidation, got %d", cache.invalidated)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	svc, _, _, _ := newProductService()

	cases := []ports.CreateProductInput{
		{Name: "", Price: 1, OwnerID: "seller_1"},
		{Name: "Thing", Price: -1, OwnerID: "seller_1"},
		{Name: "Thing", Price: 1, Stock: -5, OwnerID: "seller_1"},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestProductService_Update_OwnershipGuard(t *testing.T) {
	svc, _, _, _ := newProductService()

	created, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Lamp", Price: 20, OwnerID: "seller_1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	otherSeller := ports.Actor{UserID: "seller_2", Role: domain.RoleSeller}
	if _, err := svc.Update(context.Background(), created.ID, otherSeller, ports.UpdateProductInput{Name: strptr("Hacked")}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another seller, got %v", err)
	}

	admin := ports.Actor{UserID: "admin_1", Role: domain.RoleAdmin}
	changed, err := svc.Update(context.Background(), created.ID, admin, ports.UpdateProductInput{Name: strptr("Desk Lamp")})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected update to report a change")
	}

	owner := ports.Actor{UserID: "seller_1", Role: domain.RoleSeller}
	if _, err := svc.Update(context.Background(), created.ID, owner, ports.UpdateProductInput{Price: floatptr(25)}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
}

func TestProductService_Update_NotFoundBeforeForbidden(t *testing.T) {
	svc, _, _, _ := newProductService()

	actor := ports.Actor{UserID: "seller_1", Role: domain.RoleSeller}
	if _, err := svc.Update(context.Background(), "missing", actor, ports.UpdateProductInput{Name: strptr("x")}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Update_NoChanges(t *testing.T) {
	svc, repo, _, _ := newProductService()

	created, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Mug", Price: 5, OwnerID: "seller_1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	owner := ports.Actor{UserID: "seller_1", Role: domain.RoleSeller}
	changed, err := svc.Update(context.Background(), created.ID, owner, ports.UpdateProductInput{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if changed {
		t.Fatalf("expected no change for an empty update")
	}
	if stored := repo.products[created.ID]; stored.Name != "Mug" {
		t.Fatalf("product was modified: %+v", stored)
	}
}

func TestProductService_Update_PartialFields(t *testing.T) {
	svc, repo, _, _ := newProductService()

	created, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:        "Chair",
		Price:       100,
		Description: "Oak chair",
		Stock:       3,
		OwnerID:     "seller_1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	owner := ports.Actor{UserID: "seller_1", Role: domain.RoleSeller}
	changed, err := svc.Update(context.Background(), created.ID, owner, ports.UpdateProductInput{Stock: intptr(0)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !changed {
		t.Fatalf("expected a change")
	}

	stored := repo.products[created.ID]
	if stored.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", stored.Stock)
	}
	if stored.Name != "Chair" || stored.Description != "Oak chair" || stored.Price != 100 {
		t.Fatalf("untouched fields changed: %+v", stored)
	}
}

func TestProductService_Delete_OwnershipGuard(t *testing.T) {
	svc, repo, _, cache := newProductService()

	created, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Rug", Price: 40, OwnerID: "seller_1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	buyer := ports.Actor{UserID: "buyer_1", Role: domain.RoleBuyer}
	if err := svc.Delete(context.Background(), created.ID, buyer); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	owner := ports.Actor{UserID: "seller_1", Role: domain.RoleSeller}
	if err := svc.Delete(context.Background(), created.ID, owner); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, ok := repo.products[created.ID]; ok {
		t.Fatalf("product still present after delete")
	}
	if cache.invalidated < 2 {
		t.Fatalf("expected cache invalidation on delete")
	}

	if err := svc.Delete(context.Background(), created.ID, owner); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func TestProductService_List_ExpandsOwners(t *testing.T) {
	svc, _, users, cache := newProductService()

	owner, err := users.Create(context.Background(), &domain.User{Name: "Grace", Email: "grace@example.com", Role: domain.RoleSeller})
	if err != nil {
		t.Fatalf("user create failed: %v", err)
	}

	if _, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Vase", Price: 15, OwnerID: owner.ID}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one product, got %d", len(views))
	}
	if views[0].Owner.Name != "Grace" || views[0].Owner.Email != "grace@example.com" {
		t.Fatalf("owner not expanded: %+v", views[0].Owner)
	}
	if !cache.cached {
		t.Fatalf("expected listing to be cached")
	}
}

func TestProductService_List_ServesFromCache(t *testing.T) {
	svc, repo, _, cache := newProductService()

	cached := []ports.ProductView{{Product: domain.Product{ID: "cached_1", Name: "Cached"}}}
	if err := cache.SetList(context.Background(), cached); err != nil {
		t.Fatalf("cache seed failed: %v", err)
	}
	// A product in the store but not in the cache proves where the data came from.
	repo.products["prod_x"] = &domain.Product{ID: "prod_x", Name: "Fresh"}

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 1 || views[0].Product.ID != "cached_1" {
		t.Fatalf("expected the cached listing, got %+v", views)
	}
}

func TestProductService_Get_DeletedOwner(t *testing.T) {
	svc, _, _, _ := newProductService()

	created, err := svc.Create(context.Background(), ports.CreateProductInput{Name: "Orphan", Price: 9, OwnerID: "gone"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	view, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if view.Owner != (domain.OwnerSummary{}) {
		t.Fatalf("expected empty owner summary, got %+v", view.Owner)
	}
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc, _, _, _ := newProductService()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
