package entity

import "time"

// Invoice status values
const (
	InvoiceDraft = "draft"
	InvoiceSent  = "sent"
	InvoicePaid  = "paid"
	InvoiceVoid  = "void"
)

// Billing categories for invoice line items
const (
	BillingFlightInstruction    = "flight_instruction"
	BillingGroundInstruction    = "ground_instruction"
	BillingSimulatorInstruction = "simulator_instruction"
)

// Invoice is a bill issued to a student for a completed mission. Payment
// collection is delegated to the external payment gateway; only the amounts
// and status live here.
type Invoice struct {
	ID         string
	MissionID  string
	StudentID  string
	Status     string
	TotalCents int64
	LineItems  []InvoiceLineItem
	IssuedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceLineItem is one billable training event on an invoice, derived from
// a mission time block (rate per hour times block duration).
type InvoiceLineItem struct {
	ID          string
	InvoiceID   string
	Description string
	Category    string // billing category
	Minutes     int
	RateCents   int64 // hourly rate
	AmountCents int64
}
