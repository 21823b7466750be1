package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	SearchPosts(ctx context.Context, filter listing.Filter, skip, limit int64) ([]models.Post, int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.PostMembers == nil {
		post.PostMembers = []uint{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a live post by ID. Malformed ids are reported as not found.
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID, "deleted_at": bson.M{"$exists": false}}).Decode(&post)
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// SearchPosts returns one page of live posts matching the keyword, date and
// category parts of filter, newest first
func (r *MongoPostRepository) SearchPosts(ctx context.Context, filter listing.Filter, skip, limit int64) ([]models.Post, int64, error) {
	query := postQuery(filter)
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	posts := []models.Post{}
	if skip >= total {
		return posts, total, nil
	}
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func postQuery(f listing.Filter) bson.M {
	query := bson.M{"deleted_at": bson.M{"$exists": false}}
	if len(f.Keywords) > 0 {
		clauses := make(bson.A, 0, len(f.Keywords))
		for _, k := range f.Keywords {
			clauses = append(clauses, bson.M{"content": primitive.Regex{Pattern: regexp.QuoteMeta(k), Options: "i"}})
		}
		query["$or"] = clauses
	}
	if f.Date != nil {
		query["created_at"] = bson.M{"$gte": *f.Date, "$lt": f.Date.AddDate(0, 0, 1)}
	}
	if f.CategoryID != nil {
		query["category_id"] = *f.CategoryID
	}
	return query
}
