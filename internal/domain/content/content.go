// Package content holds the CMS side of the store: blog posts and static
// pages, both carrying per-language text maps keyed by language code
// (ar, en, fr).
package content

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	// ErrPostNotFound is returned when a blog post id does not resolve.
	ErrPostNotFound = errors.New("blog post not found")
	// ErrPageNotFound is returned when a static page id or slug does not resolve.
	ErrPageNotFound = errors.New("static page not found")
	// ErrSlugTaken is returned when creating a page with a slug already in use.
	ErrSlugTaken = errors.New("page slug already taken")
)

// BlogPost is a localized article.
type BlogPost struct {
	ID            string            `json:"id"`
	Title         map[string]string `json:"title"`
	Content       map[string]string `json:"content"`
	Excerpt       map[string]string `json:"excerpt,omitempty"`
	FeaturedImage string            `json:"featured_image,omitempty"`
	Author        string            `json:"author"`
	Published     bool              `json:"published"`
	Featured      bool              `json:"featured"`
	Tags          []string          `json:"tags,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// PostInput carries the writable fields of a blog post.
type PostInput struct {
	Title         map[string]string `json:"title"`
	Content       map[string]string `json:"content"`
	Excerpt       map[string]string `json:"excerpt,omitempty"`
	FeaturedImage string            `json:"featured_image,omitempty"`
	Author        string            `json:"author"`
	Published     bool              `json:"published"`
	Featured      bool              `json:"featured"`
	Tags          []string          `json:"tags,omitempty"`
}

// Validate checks structural validity of the input.
func (in *PostInput) Validate() error {
	if len(in.Title) == 0 {
		return errors.New("at least one title translation is required")
	}
	if len(in.Content) == 0 {
		return errors.New("at least one content translation is required")
	}
	return nil
}

// PostFilter narrows blog post listings.
type PostFilter struct {
	Published *bool
	Featured  *bool
	Limit     int64
	Skip      int64
}

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Create(ctx context.Context, p *BlogPost) error
	GetByID(ctx context.Context, id string) (*BlogPost, error)
	// List returns posts newest first.
	List(ctx context.Context, f PostFilter) ([]BlogPost, error)
	// Replace overwrites the writable fields and refreshes updated_at.
	Replace(ctx context.Context, id string, in PostInput, now time.Time) (*BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// StaticPage is a localized CMS page addressed by a unique slug.
type StaticPage struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Title           map[string]string `json:"title"`
	Content         map[string]string `json:"content"`
	MetaDescription map[string]string `json:"meta_description,omitempty"`
	Published       bool              `json:"published"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// PageInput carries the writable fields of a static page.
type PageInput struct {
	Slug            string            `json:"slug"`
	Title           map[string]string `json:"title"`
	Content         map[string]string `json:"content"`
	MetaDescription map[string]string `json:"meta_description,omitempty"`
	Published       bool              `json:"published"`
}

// Validate checks structural validity of the input.
func (in *PageInput) Validate() error {
	if in.Slug == "" {
		return errors.New("slug is required")
	}
	if len(in.Title) == 0 {
		return errors.New("at least one title translation is required")
	}
	return nil
}

// PageRepository defines persistence operations for static pages.
type PageRepository interface {
	// Create fails with ErrSlugTaken when the slug is already in use.
	Create(ctx context.Context, p *StaticPage) error
	GetByID(ctx context.Context, id string) (*StaticPage, error)
	GetBySlug(ctx context.Context, slug string) (*StaticPage, error)
	List(ctx context.Context, limit, skip int64) ([]StaticPage, error)
	// Replace overwrites the writable fields and refreshes updated_at.
	// ErrSlugTaken when the new slug collides with another page.
	Replace(ctx context.Context, id string, in PageInput, now time.Time) (*StaticPage, error)
}
