package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// DocumentRepository defines the interface for document metadata
type DocumentRepository interface {
	Save(ctx context.Context, document *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Document, error)
}
