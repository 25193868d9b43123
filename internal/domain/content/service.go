package content

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Service implements blog and static page operations.
type Service struct {
	posts PostRepository
	pages PageRepository
	now   func() time.Time
	newID func() string
}

// NewService creates a content Service.
func NewService(posts PostRepository, pages PageRepository) *Service {
	return &Service{
		posts: posts,
		pages: pages,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CreatePost publishes a new blog post.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (*BlogPost, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	p := &BlogPost{
		ID:            s.newID(),
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		FeaturedImage: in.FeaturedImage,
		Author:        in.Author,
		Published:     in.Published,
		Featured:      in.Featured,
		Tags:          in.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create post")
	}
	return p, nil
}

// GetPost fetches a blog post by id.
func (s *Service) GetPost(ctx context.Context, id string) (*BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

// ListPosts returns blog posts matching the filter, newest first.
func (s *Service) ListPosts(ctx context.Context, f PostFilter) ([]BlogPost, error) {
	return s.posts.List(ctx, f)
}

// UpdatePost overwrites a blog post's writable fields.
func (s *Service) UpdatePost(ctx context.Context, id string, in PostInput) (*BlogPost, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.posts.Replace(ctx, id, in, s.now())
}

// DeletePost removes a blog post. ErrPostNotFound when it does not exist.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}

// CreatePage adds a static page. ErrSlugTaken on a duplicate slug.
func (s *Service) CreatePage(ctx context.Context, in PageInput) (*StaticPage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.pages.GetBySlug(ctx, in.Slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, ErrPageNotFound) {
		return nil, errors.Wrap(err, "check slug")
	}

	now := s.now()
	p := &StaticPage{
		ID:              s.newID(),
		Slug:            in.Slug,
		Title:           in.Title,
		Content:         in.Content,
		MetaDescription: in.MetaDescription,
		Published:       in.Published,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.pages.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create page")
	}
	return p, nil
}

// GetPage fetches a static page by id.
func (s *Service) GetPage(ctx context.Context, id string) (*StaticPage, error) {
	return s.pages.GetByID(ctx, id)
}

// ListPages returns static pages.
func (s *Service) ListPages(ctx context.Context, limit, skip int64) ([]StaticPage, error) {
	return s.pages.List(ctx, limit, skip)
}

// UpdatePage overwrites a static page's writable fields. ErrSlugTaken when
// the new slug belongs to a different page.
func (s *Service) UpdatePage(ctx context.Context, id string, in PageInput) (*StaticPage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if other, err := s.pages.GetBySlug(ctx, in.Slug); err == nil {
		if other.ID != id {
			return nil, ErrSlugTaken
		}
	} else if !errors.Is(err, ErrPageNotFound) {
		return nil, errors.Wrap(err, "check slug")
	}
	return s.pages.Replace(ctx, id, in, s.now())
}
