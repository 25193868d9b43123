package mongodb

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elyvra/commerce-api/internal/domain/product"
	"github.com/elyvra/commerce-api/internal/domain/stats"
)

// ProductRepository stores catalog products. It also serves the catalog side
// of the admin dashboard.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a ProductRepository on the given database.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(collProducts)}
}

type productDoc struct {
	ID                string                             `bson:"_id"`
	SKU               string                             `bson:"sku"`
	Category          string                             `bson:"category"`
	Price             float64                            `bson:"price"`
	DiscountedPrice   *float64                           `bson:"discounted_price,omitempty"`
	ImageURL          string                             `bson:"image_url"`
	GalleryImages     []string                           `bson:"gallery_images"`
	InStock           bool                               `bson:"in_stock"`
	StockQuantity     int                                `bson:"stock_quantity"`
	Translations      map[string]product.Translation     `bson:"translations"`
	Tags              []string                           `bson:"tags"`
	Featured          bool                               `bson:"featured"`
	Certifications    []string                           `bson:"certifications"`
	ExpiryDate        *string                            `bson:"expiry_date,omitempty"`
	ManufacturingDate *string                            `bson:"manufacturing_date,omitempty"`
	BatchNumber       string                             `bson:"batch_number,omitempty"`
	StorageConditions string                             `bson:"storage_conditions,omitempty"`
	CreatedAt         string                             `bson:"created_at"`
	UpdatedAt         string                             `bson:"updated_at"`
}

func toProductDoc(p *product.Product) productDoc {
	return productDoc{
		ID:                p.ID,
		SKU:               p.SKU,
		Category:          string(p.Category),
		Price:             p.Price,
		DiscountedPrice:   p.DiscountedPrice,
		ImageURL:          p.ImageURL,
		GalleryImages:     p.GalleryImages,
		InStock:           p.InStock,
		StockQuantity:     p.StockQuantity,
		Translations:      p.Translations,
		Tags:              p.Tags,
		Featured:          p.Featured,
		Certifications:    p.Certifications,
		ExpiryDate:        encodeTimePtr(p.ExpiryDate),
		ManufacturingDate: encodeTimePtr(p.ManufacturingDate),
		BatchNumber:       p.BatchNumber,
		StorageConditions: p.StorageConditions,
		CreatedAt:         encodeTime(p.CreatedAt),
		UpdatedAt:         encodeTime(p.UpdatedAt),
	}
}

func (d *productDoc) toDomain() (*product.Product, error) {
	createdAt, err := decodeTime("created_at", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime("updated_at", d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	expiry, err := decodeTimePtr("expiry_date", d.ExpiryDate)
	if err != nil {
		return nil, err
	}
	manufactured, err := decodeTimePtr("manufacturing_date", d.ManufacturingDate)
	if err != nil {
		return nil, err
	}
	return &product.Product{
		ID:                d.ID,
		SKU:               d.SKU,
		Category:          product.Category(d.Category),
		Price:             d.Price,
		DiscountedPrice:   d.DiscountedPrice,
		ImageURL:          d.ImageURL,
		GalleryImages:     d.GalleryImages,
		InStock:           d.InStock,
		StockQuantity:     d.StockQuantity,
		Translations:      d.Translations,
		Tags:              d.Tags,
		Featured:          d.Featured,
		Certifications:    d.Certifications,
		ExpiryDate:        expiry,
		ManufacturingDate: manufactured,
		BatchNumber:       d.BatchNumber,
		StorageConditions: d.StorageConditions,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

func (r *ProductRepository) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]product.Product, error) {
	defer cur.Close(ctx)
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	out := make([]product.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	filter := bson.M{}
	if f.Category != nil {
		filter["category"] = string(*f.Category)
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	opts := options.Find().
		SetLimit(limitOrDefault(f.Limit)).
		SetSkip(f.Skip)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	return r.decodeAll(ctx, cur)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, c product.Category) ([]product.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{"category": string(c)})
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	return r.decodeAll(ctx, cur)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	var doc productDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	return doc.toDomain()
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if _, err := r.coll.InsertOne(ctx, toProductDoc(p)); err != nil {
		return errors.Wrap(err, "insert product")
	}
	return nil
}

func (r *ProductRepository) Replace(ctx context.Context, p *product.Product) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, toProductDoc(p))
	if err != nil {
		return errors.Wrap(err, "replace product")
	}
	if res.MatchedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if res.DeletedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Count implements stats.ProductSource.
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return int(n), nil
}

// CountByCategory implements stats.ProductSource.
func (r *ProductRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate categories")
	}
	defer cur.Close(ctx)

	var rows []struct {
		Category string `bson:"_id"`
		Count    int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode categories")
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Count
	}
	return out, nil
}

// LowStock implements stats.ProductSource: products with stock below the
// threshold, projected to the dashboard fields.
func (r *ProductRepository) LowStock(ctx context.Context, threshold int) ([]stats.LowStockAlert, error) {
	cur, err := r.coll.Find(ctx, bson.M{"stock_quantity": bson.M{"$lt": threshold}})
	if err != nil {
		return nil, errors.Wrap(err, "find low stock")
	}
	products, err := r.decodeAll(ctx, cur)
	if err != nil {
		return nil, err
	}
	alerts := make([]stats.LowStockAlert, 0, len(products))
	for i := range products {
		p := &products[i]
		alerts = append(alerts, stats.LowStockAlert{
			ProductID:    p.ID,
			Name:         p.Name("en"),
			CurrentStock: p.StockQuantity,
			SKU:          p.SKU,
		})
	}
	return alerts, nil
}

// Recent implements stats.ProductSource: newest products first.
func (r *ProductRepository) Recent(ctx context.Context, limit int) ([]product.Product, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find recent products")
	}
	return r.decodeAll(ctx, cur)
}
