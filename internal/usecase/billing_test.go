package usecase

import (
	"context"
	"testing"

	"trainops-service/internal/domain/entity"
	"trainops-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueForGroundMission(t *testing.T) {
	invoiceRepo := &fakeInvoiceRepo{}
	billing := NewBillingService(invoiceRepo, BillingRates{FlightCents: 7500, GroundCents: 6000, SimulatorCents: 6500}, logger.NewLogger())

	invoice, err := billing.IssueForMission(context.Background(), &entity.Mission{
		ID:              "mis-1",
		Code:            "PPL-2",
		StudentID:       "stu-1",
		Category:        entity.CategoryGround,
		StartTime:       "14:00",
		ActivityMinutes: 60,
	})
	require.NoError(t, err)

	// Ground missions have no pre-flight block: 30 + 60 + 30 minutes
	require.Len(t, invoice.LineItems, 3)
	for _, item := range invoice.LineItems {
		assert.Equal(t, entity.BillingGroundInstruction, item.Category)
		assert.Equal(t, int64(6000), item.RateCents)
	}

	// 2 billed hours at $60/hr
	assert.Equal(t, int64(12000), invoice.TotalCents)
	assert.Equal(t, entity.InvoiceSent, invoice.Status)
	require.NotNil(t, invoice.IssuedAt)
	require.Len(t, invoiceRepo.invoices, 1)
}

func TestIssueForMalformedMission(t *testing.T) {
	billing := NewBillingService(&fakeInvoiceRepo{}, BillingRates{}, logger.NewLogger())

	_, err := billing.IssueForMission(context.Background(), &entity.Mission{
		ID:        "mis-1",
		Category:  entity.CategoryFlight,
		StartTime: "not-a-time",
	})
	assert.Error(t, err)
}
