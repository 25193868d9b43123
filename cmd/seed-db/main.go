// Command seed-db loads sample products and coupons into the database and
// creates the default admin account. Intended for demos and local
// development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elyvra/commerce-api/internal/domain/admin"
	"github.com/elyvra/commerce-api/internal/domain/coupon"
	"github.com/elyvra/commerce-api/internal/domain/product"
	"github.com/elyvra/commerce-api/internal/storage/mongodb"
)

func main() {
	var (
		mongoURL     string
		dbName       string
		productsFile string
	)

	flag.StringVar(&mongoURL, "mongo-url", "", "MongoDB connection URL (or MONGO_URL env)")
	flag.StringVar(&dbName, "db-name", "elyvra", "MongoDB database name")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.Parse()

	if mongoURL == "" {
		mongoURL = os.Getenv("MONGO_URL")
	}
	if mongoURL == "" {
		slog.Error("mongo URL is required: set --mongo-url or MONGO_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, mongoURL, dbName, productsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, mongoURL, dbName, productsFile string) error {
	slog.Info("connecting to database")

	db, err := mongodb.Connect(ctx, mongoURL, dbName)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "ensure indexes")
	}

	if err := seedProducts(ctx, db, productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}
	if err := seedCoupons(ctx, db); err != nil {
		return errors.Wrap(err, "seed coupons")
	}
	if err := seedDefaultAdmin(ctx, db); err != nil {
		return errors.Wrap(err, "seed default admin")
	}

	return nil
}

func seedProducts(ctx context.Context, db *mongo.Database, productsFile string) error {
	slog.Info("reading products file", slog.String("path", productsFile))

	data, err := os.ReadFile(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products file")
	}

	var inputs []product.CreateInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	repo := mongodb.NewProductRepository(db)
	now := time.Now()
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return errors.Wrapf(err, "validate product %s", in.SKU)
		}
		if err := repo.Create(ctx, product.New(uuid.NewString(), in, now)); err != nil {
			return errors.Wrapf(err, "insert product %s", in.SKU)
		}
	}

	slog.Info("products seeded", slog.Int("count", len(inputs)))
	return nil
}

func seedCoupons(ctx context.Context, db *mongo.Database) error {
	repo := mongodb.NewCouponRepository(db)
	now := time.Now()
	minOrder := 50.0

	inputs := []coupon.CreateInput{
		{
			Code:          "WELCOME10",
			Description:   "Welcome discount: 10% off",
			DiscountType:  coupon.DiscountPercentage,
			DiscountValue: 10,
			ValidFrom:     now,
			ValidUntil:    now.AddDate(1, 0, 0),
			IsActive:      true,
		},
		{
			Code:               "SAVE20",
			Description:        "20.00 off orders",
			DiscountType:       coupon.DiscountFixedAmount,
			DiscountValue:      20,
			MinimumOrderAmount: &minOrder,
			ValidFrom:          now,
			ValidUntil:         now.AddDate(0, 6, 0),
			IsActive:           true,
		},
		{
			Code:          "FREESHIP",
			Description:   "Free shipping on any order",
			DiscountType:  coupon.DiscountFreeShipping,
			DiscountValue: 0,
			ValidFrom:     now,
			ValidUntil:    now.AddDate(0, 3, 0),
			IsActive:      true,
		},
	}

	for _, in := range inputs {
		if err := repo.Upsert(ctx, coupon.New(uuid.NewString(), in, now)); err != nil {
			return errors.Wrapf(err, "upsert coupon %s", in.Code)
		}
	}

	slog.Info("coupons seeded", slog.Int("count", len(inputs)))
	return nil
}

func seedDefaultAdmin(ctx context.Context, db *mongo.Database) error {
	svc := admin.NewService(mongodb.NewAdminRepository(db))
	created, err := svc.EnsureDefaultAdmin(ctx)
	if err != nil {
		return err
	}
	if created {
		slog.Info("default admin created", slog.String("username", admin.DefaultUsername))
	} else {
		slog.Info("default admin already exists")
	}
	return nil
}
