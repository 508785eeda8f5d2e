package users

import (
	"context"
	"errors"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by mutations targeting a user that does not exist.
var ErrNotFound = errors.New("user not found")

// Repository defines persistence operations for users. Lookup methods return
// (nil, nil) when no document matches; errors are reserved for store failures.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	FirstByPortfolioDomain(ctx context.Context, domain string) (*models.User, error)
	FirstByAdminDomain(ctx context.Context, domain string) (*models.User, error)
	// DomainInUse reports whether any user other than excludeUserID claims
	// the domain in either domain field.
	DomainInUse(ctx context.Context, domain, excludeUserID string) (bool, error)
	Create(ctx context.Context, u *models.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new repository for the given collection
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// firstByField returns the first match ordered by _id so that duplicate
// domain bindings (pre-existing dirty data) resolve deterministically.
func (r *MongoRepository) firstByField(ctx context.Context, field, value string) (*models.User, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{field: value}, opts).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) FirstByPortfolioDomain(ctx context.Context, domain string) (*models.User, error) {
	return r.firstByField(ctx, "portfolioDomain", domain)
}

func (r *MongoRepository) FirstByAdminDomain(ctx context.Context, domain string) (*models.User, error) {
	return r.firstByField(ctx, "adminDomain", domain)
}

func (r *MongoRepository) DomainInUse(ctx context.Context, domain, excludeUserID string) (bool, error) {
	filter := bson.M{
		"_id": bson.M{"$ne": excludeUserID},
		"$or": bson.A{
			bson.M{"portfolioDomain": domain},
			bson.M{"adminDomain": domain},
		},
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoRepository) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *MongoRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
