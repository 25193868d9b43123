package mongodb

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elyvra/commerce-api/internal/domain/coupon"
)

// CouponRepository stores coupons keyed by their unique code.
type CouponRepository struct {
	coll *mongo.Collection
}

// NewCouponRepository creates a CouponRepository on the given database.
func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{coll: db.Collection(collCoupons)}
}

type couponDoc struct {
	ID                 string   `bson:"_id"`
	Code               string   `bson:"code"`
	Description        string   `bson:"description"`
	DiscountType       string   `bson:"discount_type"`
	DiscountValue      float64  `bson:"discount_value"`
	MinimumOrderAmount *float64 `bson:"minimum_order_amount,omitempty"`
	MaxUsageCount      *int     `bson:"max_usage_count,omitempty"`
	CurrentUsageCount  int      `bson:"current_usage_count"`
	ValidFrom          string   `bson:"valid_from"`
	ValidUntil         string   `bson:"valid_until"`
	IsActive           bool     `bson:"is_active"`
	CreatedAt          string   `bson:"created_at"`
}

func toCouponDoc(c *coupon.Coupon) couponDoc {
	return couponDoc{
		ID:                 c.ID,
		Code:               c.Code,
		Description:        c.Description,
		DiscountType:       string(c.DiscountType),
		DiscountValue:      c.DiscountValue,
		MinimumOrderAmount: c.MinimumOrderAmount,
		MaxUsageCount:      c.MaxUsageCount,
		CurrentUsageCount:  c.CurrentUsageCount,
		ValidFrom:          encodeTime(c.ValidFrom),
		ValidUntil:         encodeTime(c.ValidUntil),
		IsActive:           c.IsActive,
		CreatedAt:          encodeTime(c.CreatedAt),
	}
}

func (d *couponDoc) toDomain() (*coupon.Coupon, error) {
	validFrom, err := decodeTime("valid_from", d.ValidFrom)
	if err != nil {
		return nil, err
	}
	validUntil, err := decodeTime("valid_until", d.ValidUntil)
	if err != nil {
		return nil, err
	}
	createdAt, err := decodeTime("created_at", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &coupon.Coupon{
		ID:                 d.ID,
		Code:               d.Code,
		Description:        d.Description,
		DiscountType:       coupon.DiscountType(d.DiscountType),
		DiscountValue:      d.DiscountValue,
		MinimumOrderAmount: d.MinimumOrderAmount,
		MaxUsageCount:      d.MaxUsageCount,
		CurrentUsageCount:  d.CurrentUsageCount,
		ValidFrom:          validFrom,
		ValidUntil:         validUntil,
		IsActive:           d.IsActive,
		CreatedAt:          createdAt,
	}, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var doc couponDoc
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, coupon.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find coupon")
	}
	return doc.toDomain()
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	if _, err := r.coll.InsertOne(ctx, toCouponDoc(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return coupon.ErrCodeExists
		}
		return errors.Wrap(err, "insert coupon")
	}
	return nil
}

func (r *CouponRepository) List(ctx context.Context, f coupon.Filter) ([]coupon.Coupon, error) {
	filter := bson.M{}
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}

	opts := options.Find().
		SetLimit(limitOrDefault(f.Limit)).
		SetSkip(f.Skip)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find coupons")
	}
	defer cur.Close(ctx)

	var docs []couponDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode coupons")
	}
	out := make([]coupon.Coupon, 0, len(docs))
	for i := range docs {
		c, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// Upsert inserts or refreshes a coupon by code, keeping the _id of an
// existing document. Used by the bulk importer.
func (r *CouponRepository) Upsert(ctx context.Context, c *coupon.Coupon) error {
	doc := toCouponDoc(c)
	update := bson.M{
		"$set": bson.M{
			"description":          doc.Description,
			"discount_type":        doc.DiscountType,
			"discount_value":       doc.DiscountValue,
			"minimum_order_amount": doc.MinimumOrderAmount,
			"max_usage_count":      doc.MaxUsageCount,
			"valid_from":           doc.ValidFrom,
			"valid_until":          doc.ValidUntil,
			"is_active":            doc.IsActive,
		},
		"$setOnInsert": bson.M{
			"_id":                 doc.ID,
			"current_usage_count": doc.CurrentUsageCount,
			"created_at":          doc.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"code": c.Code}, update, opts); err != nil {
		return errors.Wrap(err, "upsert coupon")
	}
	return nil
}
