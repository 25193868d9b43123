package mongodb

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the repositories rely on for
// duplicate detection. Safe to call on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	for coll, keys := range map[string][]mongo.IndexModel{
		collCoupons: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		collPages: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		collAdmins: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		collOrders: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		},
		collProducts: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	} {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, keys); err != nil {
			return errors.Wrapf(err, "create %s indexes", coll)
		}
	}
	return nil
}
