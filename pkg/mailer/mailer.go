package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/scootly/scootly-backend/pkg/config"
)

// Mailer sends HTML email. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// SMTPMailer delivers mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTP constructs an SMTP-backed mailer from config.
func NewSMTP(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("smtp configuration is incomplete")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send delivers one HTML message to the listed recipients.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", m.cfg.FromName, m.cfg.DefaultFrom),
		fmt.Sprintf("To: %s", strings.Join(to, ",")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	if err := smtp.SendMail(addr, auth, m.cfg.DefaultFrom, to, []byte(message)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// Noop discards all mail. Used when SMTP is not configured.
type Noop struct{}

func (Noop) Send(_ context.Context, _ []string, _, _ string) error { return nil }
