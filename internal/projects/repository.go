package projects

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jatinbuilds/trio/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("project not found")

// Repository provides project persistence. CreatedAt/UpdatedAt are assigned
// here at write time; client-supplied timestamps never reach the store.
type Repository interface {
	Create(ctx context.Context, p *models.Project) (string, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Project, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// MongoRepository implements Repository using a Mongo collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	// authorId carries the list query for portfolio pages
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}}}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, p *models.Project) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Project{}
	for cur.Next(ctx) {
		var p models.Project
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
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

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
