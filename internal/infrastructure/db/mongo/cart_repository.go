package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketloop/commerce-api/internal/core/domain"
)

const cartsCollection = "carts"

// CartRepository implements ports.CartRepository over the carts collection.
// The unique owner index guarantees at most one cart per user.
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

type cartItemDoc struct {
	ProductID primitive.ObjectID `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
}

type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `bson:"owner_id"`
	Items     []cartItemDoc      `bson:"items"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *CartRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrCartNotFound
	}

	var doc cartDoc
	if err := r.coll.FindOne(ctx, bson.M{"owner_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return doc.toDomain(), nil
}

// Save replaces the owner's cart document, inserting it when absent. The
// whole-document write is what makes each cart mutation atomic.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(cart.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad owner id", domain.ErrInvalidInput)
	}

	items := make([]cartItemDoc, 0, len(cart.Items))
	for _, it := range cart.Items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad product id", domain.ErrInvalidInput)
		}
		items = append(items, cartItemDoc{ProductID: pid, Quantity: it.Quantity})
	}

	doc := cartDoc{
		OwnerID:   oid,
		Items:     items,
		UpdatedAt: time.Now().UTC().Unix(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"owner_id": oid}, doc, opts); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return r.FindByOwner(ctx, cart.OwnerID)
}

// EnsureIndexes creates the unique index backing the one-cart-per-user
// invariant.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (d *cartDoc) toDomain() *domain.Cart {
	items := make([]domain.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.CartItem{ProductID: it.ProductID.Hex(), Quantity: it.Quantity})
	}
	return &domain.Cart{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID.Hex(),
		Items:     items,
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
}
