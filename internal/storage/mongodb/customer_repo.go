package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elyvra/commerce-api/internal/domain/customer"
)

// CustomerRepository stores customers and their order aggregates.
type CustomerRepository struct {
	coll *mongo.Collection
}

// NewCustomerRepository creates a CustomerRepository on the given database.
func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{coll: db.Collection(collCustomers)}
}

type addressDoc struct {
	Street     string `bson:"street"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	Country    string `bson:"country"`
	PostalCode string `bson:"postal_code"`
}

type customerDoc struct {
	ID                string      `bson:"_id"`
	Email             string      `bson:"email"`
	FirstName         string      `bson:"first_name"`
	LastName          string      `bson:"last_name"`
	Phone             string      `bson:"phone,omitempty"`
	PreferredLanguage string      `bson:"preferred_language"`
	BillingAddress    *addressDoc `bson:"billing_address,omitempty"`
	ShippingAddress   *addressDoc `bson:"shipping_address,omitempty"`
	Segment           string      `bson:"segment"`
	TotalOrders       int         `bson:"total_orders"`
	TotalSpent        float64     `bson:"total_spent"`
	CreatedAt         string      `bson:"created_at"`
	UpdatedAt         string      `bson:"updated_at"`
}

func toAddressPtr(d *addressDoc) *customer.Address {
	if d == nil {
		return nil
	}
	a := customer.Address(*d)
	return &a
}

func (d *customerDoc) toDomain() (*customer.Customer, error) {
	createdAt, err := decodeTime("created_at", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime("updated_at", d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &customer.Customer{
		ID:                d.ID,
		Email:             d.Email,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Phone:             d.Phone,
		PreferredLanguage: d.PreferredLanguage,
		BillingAddress:    toAddressPtr(d.BillingAddress),
		ShippingAddress:   toAddressPtr(d.ShippingAddress),
		Segment:           customer.Segment(d.Segment),
		TotalOrders:       d.TotalOrders,
		TotalSpent:        d.TotalSpent,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	var doc customerDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, customer.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find customer")
	}
	return doc.toDomain()
}

func (r *CustomerRepository) List(ctx context.Context, f customer.Filter) ([]customer.Customer, error) {
	filter := bson.M{}
	if f.Segment != nil {
		filter["segment"] = string(*f.Segment)
	}

	opts := options.Find().
		SetLimit(limitOrDefault(f.Limit)).
		SetSkip(f.Skip)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find customers")
	}
	defer cur.Close(ctx)

	var docs []customerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode customers")
	}
	out := make([]customer.Customer, 0, len(docs))
	for i := range docs {
		c, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// IncrementStats bumps total_orders by one and total_spent by amount in a
// single update.
func (r *CustomerRepository) IncrementStats(ctx context.Context, id string, amount float64, now time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"total_orders": 1, "total_spent": amount},
		"$set": bson.M{"updated_at": encodeTime(now)},
	})
	if err != nil {
		return errors.Wrap(err, "update customer stats")
	}
	if res.MatchedCount == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// Count implements stats.CustomerSource.
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count customers")
	}
	return int(n), nil
}
