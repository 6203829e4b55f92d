package templates

import (
	"context"
	"fmt"
	"strings"

	"trainops-service/internal/domain/repository"
	"trainops-service/internal/usecase"
	"trainops-service/pkg/logger"
	"trainops-service/pkg/timeutil"
)

// InvoiceIssuedHandler emails the student an itemized bill after a mission
// is completed.
type InvoiceIssuedHandler struct {
	mailer repository.MailRepository
	logger logger.Logger
}

// NewInvoiceIssuedHandler creates a new invoice issued handler
func NewInvoiceIssuedHandler(mailer repository.MailRepository, logger logger.Logger) *InvoiceIssuedHandler {
	return &InvoiceIssuedHandler{
		mailer: mailer,
		logger: logger,
	}
}

// CanHandle determines if this handler can process the given event type
func (h *InvoiceIssuedHandler) CanHandle(eventType string) bool {
	return eventType == usecase.EventInvoiceIssued
}

// Process sends the invoice summary to the student
func (h *InvoiceIssuedHandler) Process(ctx context.Context, event *usecase.NotificationEvent) error {
	if event.Student == nil || event.Student.Email == "" {
		h.logger.Warn("Invoice email skipped, student has no email", "invoiceId", event.Invoice.ID)
		return nil
	}

	invoice := event.Invoice
	subject := fmt.Sprintf("Invoice for mission %s", event.Mission.Code)

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString("<h2>Training Invoice</h2>")
	sb.WriteString(fmt.Sprintf("<p>Hi %s,</p>", event.Student.FullName()))
	sb.WriteString(fmt.Sprintf("<p>Here is your invoice for mission <strong>%s</strong> on %s.</p>",
		event.Mission.Code, event.Mission.ScheduledDate))

	sb.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	sb.WriteString("<tr><th>Item</th><th>Duration</th><th>Rate</th><th>Amount</th></tr>")
	for _, item := range invoice.LineItems {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s/hr</td><td>%s</td></tr>",
			item.Description,
			timeutil.FormatDuration(item.Minutes),
			formatCents(item.RateCents),
			formatCents(item.AmountCents)))
	}
	sb.WriteString(fmt.Sprintf("<tr><td colspan=\"3\"><strong>Total</strong></td><td><strong>%s</strong></td></tr>",
		formatCents(invoice.TotalCents)))
	sb.WriteString("</table>")

	sb.WriteString("<p>Thank you for training with us.</p>")
	sb.WriteString("</body></html>")

	return h.mailer.SendHTML(ctx, event.Student.Email, subject, sb.String())
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
