package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoices
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ListByStudent(ctx context.Context, studentID string) ([]*entity.Invoice, error)
}
