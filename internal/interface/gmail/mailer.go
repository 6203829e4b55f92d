package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"trainops-service/internal/infrastructure/oauth"
	"trainops-service/pkg/logger"
	"trainops-service/pkg/metrics"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailMailer sends HTML email through the Gmail API on behalf of the
// configured sender address.
type GmailMailer struct {
	service *gmail.Service
	sender  string
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewGmailMailer creates a Gmail API client using the OAuth token source.
func NewGmailMailer(ctx context.Context, auth *oauth.GmailOAuth, sender string, logger logger.Logger, metrics *metrics.Metrics) (*GmailMailer, error) {
	tokenSource := auth.GetTokenSource(ctx)

	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &GmailMailer{
		service: service,
		sender:  sender,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// SendHTML builds an RFC 822 message with an HTML body and sends it.
func (m *GmailMailer) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	raw := m.buildMessage(to, subject, htmlBody)

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := m.service.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		m.metrics.ErrorsCount.WithLabelValues("email_send").Inc()
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	m.metrics.EmailsSent.Inc()
	m.logger.Info("Email sent", "to", to, "subject", subject)
	return nil
}

func (m *GmailMailer) buildMessage(to, subject, htmlBody string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", m.sender))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", encodeSubject(subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	return sb.String()
}

// encodeSubject applies RFC 2047 encoding when the subject contains
// non-ASCII characters.
func encodeSubject(subject string) string {
	for _, r := range subject {
		if r > 127 {
			return mime.QEncoding.Encode("UTF-8", subject)
		}
	}
	return subject
}
