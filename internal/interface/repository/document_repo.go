package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocumentRepository implements the DocumentRepository interface
type MongoDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a new MongoDB document repository
func NewMongoDocumentRepository(db *mongo.Database) repository.DocumentRepository {
	collection := db.Collection("documents")

	// Create indexes for better performance
	ctx := context.Background()

	ownerIndex := mongo.IndexModel{
		Keys: bson.M{"ownerId": 1},
	}

	uploadedAtIndex := mongo.IndexModel{
		Keys: bson.M{"uploadedAt": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		ownerIndex,
		uploadedAtIndex,
	})

	return &MongoDocumentRepository{
		collection: collection,
	}
}

// Save stores a document's metadata
func (r *MongoDocumentRepository) Save(ctx context.Context, document *entity.Document) error {
	_, err := r.collection.InsertOne(ctx, document)
	return err
}

// GetByID finds a document by ID
func (r *MongoDocumentRepository) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	var document entity.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// ListByOwner returns a user's documents, newest first
func (r *MongoDocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Document, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, &options.FindOptions{
		Sort: bson.D{{Key: "uploadedAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var documents []*entity.Document
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}

	return documents, nil
}
