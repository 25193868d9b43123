package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elyvra/commerce-api/internal/domain/customer"
	"github.com/elyvra/commerce-api/internal/domain/order"
	"github.com/elyvra/commerce-api/internal/domain/stats"
)

// OrderRepository stores orders. It also serves the order-side dashboard
// aggregates.
type OrderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository creates an OrderRepository on the given database.
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(collOrders)}
}

type orderItemDoc struct {
	ProductID   string  `bson:"product_id"`
	ProductName string  `bson:"product_name"`
	Price       float64 `bson:"price"`
	Quantity    int     `bson:"quantity"`
	Total       float64 `bson:"total"`
}

type orderDoc struct {
	ID              string         `bson:"_id"`
	CustomerID      string         `bson:"customer_id"`
	Items           []orderItemDoc `bson:"items"`
	Subtotal        float64        `bson:"subtotal"`
	TaxAmount       float64        `bson:"tax_amount"`
	ShippingCost    float64        `bson:"shipping_cost"`
	DiscountAmount  float64        `bson:"discount_amount"`
	TotalAmount     float64        `bson:"total_amount"`
	Status          string         `bson:"status"`
	PaymentMethod   string         `bson:"payment_method,omitempty"`
	ShippingAddress addressDoc     `bson:"shipping_address"`
	BillingAddress  addressDoc     `bson:"billing_address"`
	Notes           string         `bson:"notes,omitempty"`
	TrackingNumber  string         `bson:"tracking_number,omitempty"`
	CouponCode      string         `bson:"coupon_code,omitempty"`
	CreatedAt       string         `bson:"created_at"`
	UpdatedAt       string         `bson:"updated_at"`
}

func toOrderDoc(o *order.Order) orderDoc {
	items := make([]orderItemDoc, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemDoc(item)
	}
	return orderDoc{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		Items:           items,
		Subtotal:        o.Subtotal,
		TaxAmount:       o.TaxAmount,
		ShippingCost:    o.ShippingCost,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		ShippingAddress: addressDoc(o.ShippingAddress),
		BillingAddress:  addressDoc(o.BillingAddress),
		Notes:           o.Notes,
		TrackingNumber:  o.TrackingNumber,
		CouponCode:      o.CouponCode,
		CreatedAt:       encodeTime(o.CreatedAt),
		UpdatedAt:       encodeTime(o.UpdatedAt),
	}
}

func (d *orderDoc) toDomain() (*order.Order, error) {
	createdAt, err := decodeTime("created_at", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime("updated_at", d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	items := make([]order.Item, len(d.Items))
	for i, item := range d.Items {
		items[i] = order.Item(item)
	}
	return &order.Order{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		Items:           items,
		Subtotal:        d.Subtotal,
		TaxAmount:       d.TaxAmount,
		ShippingCost:    d.ShippingCost,
		DiscountAmount:  d.DiscountAmount,
		TotalAmount:     d.TotalAmount,
		Status:          order.Status(d.Status),
		PaymentMethod:   order.PaymentMethod(d.PaymentMethod),
		ShippingAddress: customer.Address(d.ShippingAddress),
		BillingAddress:  customer.Address(d.BillingAddress),
		Notes:           d.Notes,
		TrackingNumber:  d.TrackingNumber,
		CouponCode:      d.CouponCode,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func (r *OrderRepository) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]order.Order, error) {
	defer cur.Close(ctx)
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	out := make([]order.Order, 0, len(docs))
	for i := range docs {
		o, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if _, err := r.coll.InsertOne(ctx, toOrderDoc(o)); err != nil {
		return errors.Wrap(err, "insert order")
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var doc orderDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find order")
	}
	return doc.toDomain()
}

func (r *OrderRepository) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	filter := bson.M{}
	if f.Status != nil {
		filter["status"] = string(*f.Status)
	}
	if f.CustomerID != nil {
		filter["customer_id"] = *f.CustomerID
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limitOrDefault(f.Limit)).
		SetSkip(f.Skip)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}
	return r.decodeAll(ctx, cur)
}

func (r *OrderRepository) ApplyUpdate(ctx context.Context, id string, in order.UpdateInput, now time.Time) (*order.Order, error) {
	set := bson.M{"updated_at": encodeTime(now)}
	if in.Status != nil {
		set["status"] = string(*in.Status)
	}
	if in.TrackingNumber != nil {
		set["tracking_number"] = *in.TrackingNumber
	}
	if in.Notes != nil {
		set["notes"] = *in.Notes
	}

	var doc orderDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update order")
	}
	return doc.toDomain()
}

// Count implements stats.OrderSource.
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "count orders")
	}
	return int(n), nil
}

// TotalRevenue implements stats.OrderSource. Zero with no orders.
func (r *OrderRepository) TotalRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, errors.Wrap(err, "aggregate revenue")
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, errors.Wrap(err, "decode revenue")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// CountByStatus implements stats.OrderSource.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate statuses")
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode statuses")
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// DailySales implements stats.OrderSource: orders created at or after since,
// grouped by UTC day, ascending. Days without orders are absent. The string
// range match works because created_at is stored RFC3339.
func (r *OrderRepository) DailySales(ctx context.Context, since time.Time) ([]stats.DailySales, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": encodeTime(since)}}},
		{"$group": bson.M{
			"_id":    bson.M{"$substrBytes": bson.A{"$created_at", 0, 10}},
			"sales":  bson.M{"$sum": "$total_amount"},
			"orders": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate daily sales")
	}
	defer cur.Close(ctx)

	var rows []struct {
		Date   string  `bson:"_id"`
		Sales  float64 `bson:"sales"`
		Orders int     `bson:"orders"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode daily sales")
	}
	out := make([]stats.DailySales, len(rows))
	for i, row := range rows {
		out[i] = stats.DailySales(row)
	}
	return out, nil
}

// TopSellers implements stats.OrderSource: products ranked by quantity sold
// across all orders, product id as the tie-break for a stable ranking.
func (r *OrderRepository) TopSellers(ctx context.Context, limit int) ([]stats.ProductSales, error) {
	pipeline := []bson.M{
		{"$unwind": "$items"},
		{"$group": bson.M{
			"_id":            "$items.product_id",
			"product_name":   bson.M{"$first": "$items.product_name"},
			"total_quantity": bson.M{"$sum": "$items.quantity"},
			"total_revenue":  bson.M{"$sum": "$items.total"},
		}},
		{"$sort": bson.D{{Key: "total_quantity", Value: -1}, {Key: "_id", Value: 1}}},
		{"$limit": limit},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate top sellers")
	}
	defer cur.Close(ctx)

	var rows []struct {
		ProductID string  `bson:"_id"`
		Name      string  `bson:"product_name"`
		Quantity  int     `bson:"total_quantity"`
		Revenue   float64 `bson:"total_revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode top sellers")
	}
	out := make([]stats.ProductSales, len(rows))
	for i, row := range rows {
		out[i] = stats.ProductSales{
			ProductID:    row.ProductID,
			Name:         row.Name,
			QuantitySold: row.Quantity,
			Revenue:      row.Revenue,
		}
	}
	return out, nil
}

// Recent implements stats.OrderSource: newest orders first.
func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]order.Order, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find recent orders")
	}
	return r.decodeAll(ctx, cur)
}
