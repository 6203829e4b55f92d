package usecase

import (
	"context"
	"fmt"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"
	"trainops-service/internal/scheduling"
	"trainops-service/pkg/logger"

	"github.com/google/uuid"
)

// BillingRates are the hourly instruction rates in cents per category
type BillingRates struct {
	FlightCents    int64
	GroundCents    int64
	SimulatorCents int64
}

// BillingService derives invoices from mission time blocks. Every block is
// billed at the category's instruction rate; the student-only pre-flight
// block bills at the flight rate like the rest of a flight mission.
type BillingService struct {
	invoiceRepo repository.InvoiceRepository
	rates       BillingRates
	logger      logger.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(invoiceRepo repository.InvoiceRepository, rates BillingRates, logger logger.Logger) *BillingService {
	return &BillingService{
		invoiceRepo: invoiceRepo,
		rates:       rates,
		logger:      logger,
	}
}

// IssueForMission creates and stores the invoice for a completed mission
func (b *BillingService) IssueForMission(ctx context.Context, mission *entity.Mission) (*entity.Invoice, error) {
	breakdown, err := scheduling.ComputeTimeBlocks(mission.Category, mission.StartTime, mission.ActivityMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute time blocks: %w", err)
	}

	category, rate := b.rateFor(mission.Category)

	now := time.Now()
	invoice := &entity.Invoice{
		ID:        uuid.NewString(),
		MissionID: mission.ID,
		StudentID: mission.StudentID,
		Status:    entity.InvoiceSent,
		IssuedAt:  &now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, block := range breakdown.Blocks {
		amount := rate * int64(block.DurationMinutes) / 60
		invoice.LineItems = append(invoice.LineItems, entity.InvoiceLineItem{
			ID:          uuid.NewString(),
			InvoiceID:   invoice.ID,
			Description: fmt.Sprintf("%s (%s)", block.Label, mission.Code),
			Category:    category,
			Minutes:     block.DurationMinutes,
			RateCents:   rate,
			AmountCents: amount,
		})
		invoice.TotalCents += amount
	}

	if err := b.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to store invoice: %w", err)
	}

	b.logger.Info("Invoice issued",
		"invoiceId", invoice.ID,
		"missionId", mission.ID,
		"totalCents", invoice.TotalCents)
	return invoice, nil
}

func (b *BillingService) rateFor(category entity.MissionCategory) (string, int64) {
	switch category {
	case entity.CategoryGround:
		return entity.BillingGroundInstruction, b.rates.GroundCents
	case entity.CategorySimulator:
		return entity.BillingSimulatorInstruction, b.rates.SimulatorCents
	default:
		return entity.BillingFlightInstruction, b.rates.FlightCents
	}
}
