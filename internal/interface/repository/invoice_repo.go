package repository

import (
	"context"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements the InvoiceRepository interface
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GORM invoice repository
func NewGormInvoiceRepository(db *gorm.DB) repository.InvoiceRepository {
	return &GormInvoiceRepository{
		db: db,
	}
}

// Invoices GORM model for database mapping
type Invoices struct {
	ID         string `gorm:"primaryKey;column:id"`
	MissionID  string `gorm:"column:mission_id;index"`
	StudentID  string `gorm:"column:student_id;index"`
	Status     string `gorm:"column:status"`
	TotalCents int64  `gorm:"column:total_cents"`
	IssuedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the default table name
func (Invoices) TableName() string {
	return "invoices"
}

// InvoiceLineItems GORM model for database mapping
type InvoiceLineItems struct {
	ID          string `gorm:"primaryKey;column:id"`
	InvoiceID   string `gorm:"column:invoice_id;index"`
	Description string `gorm:"column:description"`
	Category    string `gorm:"column:category"`
	Minutes     int    `gorm:"column:minutes"`
	RateCents   int64  `gorm:"column:rate_cents"`
	AmountCents int64  `gorm:"column:amount_cents"`
	CreatedAt   time.Time
}

// TableName overrides the default table name
func (InvoiceLineItems) TableName() string {
	return "invoice_line_items"
}

// Create inserts an invoice with its line items in one transaction
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := Invoices{
			ID:         invoice.ID,
			MissionID:  invoice.MissionID,
			StudentID:  invoice.StudentID,
			Status:     invoice.Status,
			TotalCents: invoice.TotalCents,
			IssuedAt:   invoice.IssuedAt,
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		for i := range invoice.LineItems {
			item := &invoice.LineItems[i]
			itemModel := InvoiceLineItems{
				ID:          item.ID,
				InvoiceID:   invoice.ID,
				Description: item.Description,
				Category:    item.Category,
				Minutes:     item.Minutes,
				RateCents:   item.RateCents,
				AmountCents: item.AmountCents,
			}
			if err := tx.Create(&itemModel).Error; err != nil {
				return err
			}
			item.InvoiceID = invoice.ID
		}

		invoice.CreatedAt = model.CreatedAt
		invoice.UpdatedAt = model.UpdatedAt
		return nil
	})
}

// GetByID finds an invoice and its line items
func (r *GormInvoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var model Invoices
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		return nil, result.Error
	}

	var itemModels []InvoiceLineItems
	result = r.db.WithContext(ctx).Where("invoice_id = ?", id).Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoice := &entity.Invoice{
		ID:         model.ID,
		MissionID:  model.MissionID,
		StudentID:  model.StudentID,
		Status:     model.Status,
		TotalCents: model.TotalCents,
		IssuedAt:   model.IssuedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
	for i := range itemModels {
		invoice.LineItems = append(invoice.LineItems, entity.InvoiceLineItem{
			ID:          itemModels[i].ID,
			InvoiceID:   itemModels[i].InvoiceID,
			Description: itemModels[i].Description,
			Category:    itemModels[i].Category,
			Minutes:     itemModels[i].Minutes,
			RateCents:   itemModels[i].RateCents,
			AmountCents: itemModels[i].AmountCents,
		})
	}
	return invoice, nil
}

// ListByStudent returns a student's invoices without line items
func (r *GormInvoiceRepository) ListByStudent(ctx context.Context, studentID string) ([]*entity.Invoice, error) {
	var models []Invoices
	result := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, 0, len(models))
	for i := range models {
		invoices = append(invoices, &entity.Invoice{
			ID:         models[i].ID,
			MissionID:  models[i].MissionID,
			StudentID:  models[i].StudentID,
			Status:     models[i].Status,
			TotalCents: models[i].TotalCents,
			IssuedAt:   models[i].IssuedAt,
			CreatedAt:  models[i].CreatedAt,
			UpdatedAt:  models[i].UpdatedAt,
		})
	}
	return invoices, nil
}
