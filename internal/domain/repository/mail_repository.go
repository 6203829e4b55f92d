package repository

import "context"

// MailRepository defines the interface for sending transactional email.
// Delivery itself is delegated to the external email provider.
type MailRepository interface {
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
}
