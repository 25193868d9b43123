package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elyvra/commerce-api/internal/domain/content"
)

// BlogPostRepository stores blog posts.
type BlogPostRepository struct {
	coll *mongo.Collection
}

// NewBlogPostRepository creates a BlogPostRepository on the given database.
func NewBlogPostRepository(db *mongo.Database) *BlogPostRepository {
	return &BlogPostRepository{coll: db.Collection(collBlogPosts)}
}

type blogPostDoc struct {
	ID            string            `bson:"_id"`
	Title         map[string]string `bson:"title"`
	Content       map[string]string `bson:"content"`
	Excerpt       map[string]string `bson:"excerpt,omitempty"`
	FeaturedImage string            `bson:"featured_image,omitempty"`
	Author        string            `bson:"author"`
	Published     bool              `bson:"published"`
	Featured      bool              `bson:"featured"`
	Tags          []string          `bson:"tags,omitempty"`
	CreatedAt     string            `bson:"created_at"`
	UpdatedAt     string            `bson:"updated_at"`
}

func toBlogPostDoc(p *content.BlogPost) blogPostDoc {
	return blogPostDoc{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Author:        p.Author,
		Published:     p.Published,
		Featured:      p.Featured,
		Tags:          p.Tags,
		CreatedAt:     encodeTime(p.CreatedAt),
		UpdatedAt:     encodeTime(p.UpdatedAt),
	}
}

func (d *blogPostDoc) toDomain() (*content.BlogPost, error) {
	createdAt, err := decodeTime("created_at", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime("updated_at", d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &content.BlogPost{
		ID:            d.ID,
		Title:         d.Title,
		Content:       d.Content,
		Excerpt:       d.Excerpt,
		FeaturedImage: d.FeaturedImage,
		Author:        d.Author,
		Published:     d.Published,
		Featured:      d.Featured,
		Tags:          d.Tags,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func (r *BlogPostRepository) Create(ctx context.Context, p *content.BlogPost) error {
	if _, err := r.coll.InsertOne(ctx, toBlogPostDoc(p)); err != nil {
		return errors.Wrap(err, "insert blog post")
	}
	return nil
}

func (r *BlogPostRepository) GetByID(ctx context.Context, id string) (*content.BlogPost, error) {
	var doc blogPostDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, content.ErrPostNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find blog post")
	}
	return doc.toDomain()
}

func (r *BlogPostRepository) List(ctx context.Context, f content.PostFilter) ([]content.BlogPost, error) {
	filter := bson.M{}
	if f.Published != nil {
		filter["published"] = *f.Published
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limitOrDefault(f.Limit)).
		SetSkip(f.Skip)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find blog posts")
	}
	defer cur.Close(ctx)

	var docs []blogPostDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode blog posts")
	}
	out := make([]content.BlogPost, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *BlogPostRepository) Replace(ctx context.Context, id string, in content.PostInput, now time.Time) (*content.BlogPost, error) {
	set := bson.M{
		"title":          in.Title,
		"content":        in.Content,
		"excerpt":        in.Excerpt,
		"featured_image": in.FeaturedImage,
		"author":         in.Author,
		"published":      in.Published,
		"featured":       in.Featured,
		"tags":           in.Tags,
		"updated_at":     encodeTime(now),
	}

	var doc blogPostDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, content.ErrPostNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update blog post")
	}
	return doc.toDomain()
}

func (r *BlogPostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete blog post")
	}
	if res.DeletedCount == 0 {
		return content.ErrPostNotFound
	}
	return nil
}

// StaticPageRepository stores CMS pages keyed by a unique slug.
type StaticPageRepository struct {
	coll *mongo.Collection
}

// NewStaticPageRepository creates a StaticPageRepository on the given database.
func NewStaticPageRepository(db *mongo.Database) *StaticPageRepository {
	return &StaticPageRepository{coll: db.Collection(collPages)}
}

type staticPageDoc struct {
	ID              string            `bson:"_id"`
	Slug            string            `bson:"slug"`
	Title           map[string]string `bson:"title"`
	Content         map[string]string `bson:"content"`
	MetaDescription map[string]string `bson:"meta_description,omitempty"`
	Published       bool              `bson:"published"`
	CreatedAt       string            `bson:"created_at"`
	UpdatedAt       string            `bson:"updated_at"`
}

func (d *staticPageDoc) toDomain() (*content.StaticPage, error) {
	createdAt, err := decodeTime("created_at", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime("updated_at", d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &content.StaticPage{
		ID:              d.ID,
		Slug:            d.Slug,
		Title:           d.Title,
		Content:         d.Content,
		MetaDescription: d.MetaDescription,
		Published:       d.Published,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func (r *StaticPageRepository) Create(ctx context.Context, p *content.StaticPage) error {
	doc := staticPageDoc{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Content:         p.Content,
		MetaDescription: p.MetaDescription,
		Published:       p.Published,
		CreatedAt:       encodeTime(p.CreatedAt),
		UpdatedAt:       encodeTime(p.UpdatedAt),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return content.ErrSlugTaken
		}
		return errors.Wrap(err, "insert page")
	}
	return nil
}

func (r *StaticPageRepository) findOne(ctx context.Context, filter bson.M) (*content.StaticPage, error) {
	var doc staticPageDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, content.ErrPageNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find page")
	}
	return doc.toDomain()
}

func (r *StaticPageRepository) GetByID(ctx context.Context, id string) (*content.StaticPage, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *StaticPageRepository) GetBySlug(ctx context.Context, slug string) (*content.StaticPage, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *StaticPageRepository) List(ctx context.Context, limit, skip int64) ([]content.StaticPage, error) {
	opts := options.Find().
		SetLimit(limitOrDefault(limit)).
		SetSkip(skip)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find pages")
	}
	defer cur.Close(ctx)

	var docs []staticPageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode pages")
	}
	out := make([]content.StaticPage, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *StaticPageRepository) Replace(ctx context.Context, id string, in content.PageInput, now time.Time) (*content.StaticPage, error) {
	set := bson.M{
		"slug":             in.Slug,
		"title":            in.Title,
		"content":          in.Content,
		"meta_description": in.MetaDescription,
		"published":        in.Published,
		"updated_at":       encodeTime(now),
	}

	var doc staticPageDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, content.ErrPageNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, content.ErrSlugTaken
	}
	if err != nil {
		return nil, errors.Wrap(err, "update page")
	}
	return doc.toDomain()
}
