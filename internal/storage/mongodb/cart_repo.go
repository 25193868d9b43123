package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elyvra/commerce-api/internal/domain/cart"
)

// CartRepository stores shopping carts. It also serves the cart counters of
// the admin dashboard.
type CartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository creates a CartRepository on the given database.
func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(collCarts)}
}

type cartItemDoc struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

type cartDoc struct {
	ID        string        `bson:"_id"`
	Items     []cartItemDoc `bson:"items"`
	CreatedAt string        `bson:"created_at"`
	UpdatedAt string        `bson:"updated_at"`
}

func toCartDoc(c *cart.Cart) cartDoc {
	items := make([]cartItemDoc, len(c.Items))
	for i, item := range c.Items {
		items[i] = cartItemDoc(item)
	}
	return cartDoc{
		ID:        c.ID,
		Items:     items,
		CreatedAt: encodeTime(c.CreatedAt),
		UpdatedAt: encodeTime(c.UpdatedAt),
	}
}

func (d *cartDoc) toDomain() (*cart.Cart, error) {
	createdAt, err := decodeTime("created_at", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime("updated_at", d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	items := make([]cart.Item, len(d.Items))
	for i, item := range d.Items {
		items[i] = cart.Item(item)
	}
	return &cart.Cart{
		ID:        d.ID,
		Items:     items,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (r *CartRepository) Create(ctx context.Context, c *cart.Cart) error {
	if _, err := r.coll.InsertOne(ctx, toCartDoc(c)); err != nil {
		return errors.Wrap(err, "insert cart")
	}
	return nil
}

func (r *CartRepository) GetByID(ctx context.Context, id string) (*cart.Cart, error) {
	var doc cartDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, cart.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find cart")
	}
	return doc.toDomain()
}

func (r *CartRepository) List(ctx context.Context, f cart.Filter) ([]cart.Cart, error) {
	filter := bson.M{}
	if f.AbandonedBefore != nil {
		filter["items"] = bson.M{"$ne": bson.A{}}
		filter["updated_at"] = bson.M{"$lt": encodeTime(*f.AbandonedBefore)}
	}

	opts := options.Find().
		SetLimit(limitOrDefault(f.Limit)).
		SetSkip(f.Skip)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find carts")
	}
	defer cur.Close(ctx)

	var docs []cartDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode carts")
	}
	out := make([]cart.Cart, 0, len(docs))
	for i := range docs {
		c, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *CartRepository) ReplaceItems(ctx context.Context, id string, items []cart.Item, now time.Time) error {
	docs := make([]cartItemDoc, len(items))
	for i, item := range items {
		docs[i] = cartItemDoc(item)
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"items": docs, "updated_at": encodeTime(now)},
	})
	if err != nil {
		return errors.Wrap(err, "update cart items")
	}
	if res.MatchedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete cart")
	}
	if res.DeletedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}

// Count implements stats.CartSource.
func (r *CartRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count carts")
	}
	return int(n), nil
}

// ActiveCount implements stats.CartSource: carts holding at least one item.
func (r *CartRepository) ActiveCount(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"items": bson.M{"$ne": bson.A{}}})
	if err != nil {
		return 0, errors.Wrap(err, "count active carts")
	}
	return int(n), nil
}

// AbandonedCount implements stats.CartSource: non-empty carts last touched
// before cutoff.
func (r *CartRepository) AbandonedCount(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"items":      bson.M{"$ne": bson.A{}},
		"updated_at": bson.M{"$lt": encodeTime(cutoff)},
	})
	if err != nil {
		return 0, errors.Wrap(err, "count abandoned carts")
	}
	return int(n), nil
}
