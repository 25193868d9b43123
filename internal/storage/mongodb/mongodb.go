// Package mongodb implements the domain repositories over a MongoDB
// database. Documents use the entity's uuid string as _id and persist
// timestamps as RFC3339 strings, so lexicographic order matches
// chronological order in filters and sorts.
package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	collProducts  = "products"
	collCarts     = "carts"
	collOrders    = "orders"
	collCoupons   = "coupons"
	collCustomers = "customers"
	collAdmins    = "admins"
	collBlogPosts = "blog_posts"
	collPages     = "static_pages"
)

const connectTimeout = 10 * time.Second

// Connect opens a client, verifies the server with a ping, and returns the
// named database handle.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "ping")
	}
	return client.Database(dbName), nil
}

// limitOrDefault applies the listing defaults: 20 when unset, capped at 100.
func limitOrDefault(limit int64) int64 {
	switch {
	case limit <= 0:
		return 20
	case limit > 100:
		return 100
	}
	return limit
}
