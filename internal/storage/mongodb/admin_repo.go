package mongodb

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elyvra/commerce-api/internal/domain/admin"
)

// AdminRepository stores back-office accounts.
type AdminRepository struct {
	coll *mongo.Collection
}

// NewAdminRepository creates an AdminRepository on the given database.
func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(collAdmins)}
}

type adminDoc struct {
	ID           string   `bson:"_id"`
	Username     string   `bson:"username"`
	Email        string   `bson:"email"`
	PasswordHash string   `bson:"password_hash"`
	FullName     string   `bson:"full_name"`
	IsActive     bool     `bson:"is_active"`
	Permissions  []string `bson:"permissions"`
	CreatedAt    string   `bson:"created_at"`
}

func (d *adminDoc) toDomain() (*admin.Admin, error) {
	createdAt, err := decodeTime("created_at", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &admin.Admin{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FullName:     d.FullName,
		IsActive:     d.IsActive,
		Permissions:  d.Permissions,
		CreatedAt:    createdAt,
	}, nil
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*admin.Admin, error) {
	var doc adminDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, admin.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find admin")
	}
	return doc.toDomain()
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	doc := adminDoc{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FullName:     a.FullName,
		IsActive:     a.IsActive,
		Permissions:  a.Permissions,
		CreatedAt:    encodeTime(a.CreatedAt),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "insert admin")
	}
	return nil
}
