package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Category enumerates the supplement lines sold in the store.
type Category string

const (
	CategoryPerformance Category = "performance"
	CategoryVitality    Category = "vitality"
	CategoryBeauty      Category = "beauty"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPerformance, CategoryVitality, CategoryBeauty:
		return true
	}
	return false
}

// Translation holds the localized content bundle for a single language.
type Translation struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	ShortDescription  string   `json:"short_description"`
	Benefits          []string `json:"benefits"`
	Ingredients       []string `json:"ingredients"`
	UsageInstructions string   `json:"usage_instructions"`
	ActiveIngredients string   `json:"active_ingredients,omitempty"`
	RecommendedDosage string   `json:"recommended_dosage,omitempty"`
	UsageWarnings     string   `json:"usage_warnings,omitempty"`
}

// Product is a catalog item. Localized content lives in Translations, keyed by
// language code (ar, en, fr).
type Product struct {
	ID                string                 `json:"id"`
	SKU               string                 `json:"sku"`
	Category          Category               `json:"category"`
	Price             float64                `json:"price"`
	DiscountedPrice   *float64               `json:"discounted_price,omitempty"`
	ImageURL          string                 `json:"image_url"`
	GalleryImages     []string               `json:"gallery_images"`
	InStock           bool                   `json:"in_stock"`
	StockQuantity     int                    `json:"stock_quantity"`
	Translations      map[string]Translation `json:"translations"`
	Tags              []string               `json:"tags"`
	Featured          bool                   `json:"featured"`
	Certifications    []string               `json:"certifications"`
	ExpiryDate        *time.Time             `json:"expiry_date,omitempty"`
	ManufacturingDate *time.Time             `json:"manufacturing_date,omitempty"`
	BatchNumber       string                 `json:"batch_number,omitempty"`
	StorageConditions string                 `json:"storage_conditions,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// Name returns the product name for the given language, falling back to
// English when the language has no translation.
func (p *Product) Name(lang string) string {
	if t, ok := p.Translations[lang]; ok {
		return t.Name
	}
	if t, ok := p.Translations["en"]; ok {
		return t.Name
	}
	return ""
}

// CreateInput carries the client-provided fields for creating or replacing a
// product. The id and timestamps are assigned by the caller.
type CreateInput struct {
	SKU               string                 `json:"sku"`
	Category          Category               `json:"category"`
	Price             float64                `json:"price"`
	DiscountedPrice   *float64               `json:"discounted_price,omitempty"`
	ImageURL          string                 `json:"image_url"`
	GalleryImages     []string               `json:"gallery_images"`
	InStock           bool                   `json:"in_stock"`
	StockQuantity     int                    `json:"stock_quantity"`
	Translations      map[string]Translation `json:"translations"`
	Tags              []string               `json:"tags"`
	Featured          bool                   `json:"featured"`
	Certifications    []string               `json:"certifications"`
	ExpiryDate        *time.Time             `json:"expiry_date,omitempty"`
	ManufacturingDate *time.Time             `json:"manufacturing_date,omitempty"`
	BatchNumber       string                 `json:"batch_number,omitempty"`
	StorageConditions string                 `json:"storage_conditions,omitempty"`
}

// Validate checks the input against the catalog invariants: known category,
// at least one translation, non-negative price and stock.
func (in *CreateInput) Validate() error {
	if in.SKU == "" {
		return errors.New("sku is required")
	}
	if !in.Category.Valid() {
		return errors.Errorf("unknown category %q", in.Category)
	}
	if in.Price < 0 {
		return errors.New("price must not be negative")
	}
	if len(in.Translations) == 0 {
		return errors.New("at least one translation is required")
	}
	if in.StockQuantity < 0 {
		return errors.New("stock_quantity must not be negative")
	}
	return nil
}

// New builds a Product from validated input, assigning the given id and
// stamping both timestamps with now.
func New(id string, in CreateInput, now time.Time) *Product {
	return &Product{
		ID:                id,
		SKU:               in.SKU,
		Category:          in.Category,
		Price:             in.Price,
		DiscountedPrice:   in.DiscountedPrice,
		ImageURL:          in.ImageURL,
		GalleryImages:     in.GalleryImages,
		InStock:           in.InStock,
		StockQuantity:     in.StockQuantity,
		Translations:      in.Translations,
		Tags:              in.Tags,
		Featured:          in.Featured,
		Certifications:    in.Certifications,
		ExpiryDate:        in.ExpiryDate,
		ManufacturingDate: in.ManufacturingDate,
		BatchNumber:       in.BatchNumber,
		StorageConditions: in.StorageConditions,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Filter narrows catalog listings. Nil pointer fields are ignored.
type Filter struct {
	Category *Category
	Featured *bool
	MinPrice *float64
	MaxPrice *float64
	Limit    int64
	Skip     int64
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	ListByCategory(ctx context.Context, c Category) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Replace(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
