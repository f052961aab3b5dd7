package mailer

import (
	"context"
	"fmt"

	"github.com/Wizhill05/car-rental/pkg/config"
	"github.com/Wizhill05/car-rental/pkg/logger"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers a single plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sendFunc func(ctx context.Context, message *mail.SGMailV3) (int, error)

// Mailer sends transactional email through SendGrid. When no API key is
// configured it logs and skips delivery instead of failing, so the service
// keeps working in environments without mail credentials.
type Mailer struct {
	send     sendFunc
	fromName string
	fromAddr string
	logg     *logger.Logger
}

// New builds a Mailer from the SendGrid configuration.
func New(cfg config.SendgridConfig, logg *logger.Logger) *Mailer {
	m := &Mailer{
		fromName: cfg.FromName,
		fromAddr: cfg.DefaultFrom,
		logg:     logg,
	}
	if cfg.APIKey != "" && cfg.DefaultFrom != "" {
		client := sendgrid.NewSendClient(cfg.APIKey)
		m.send = func(ctx context.Context, message *mail.SGMailV3) (int, error) {
			resp, err := client.SendWithContext(ctx, message)
			if err != nil {
				return 0, err
			}
			return resp.StatusCode, nil
		}
	}
	return m
}

// Send delivers one message. A nil send function means mail is unconfigured;
// the message is dropped with a warning, mirroring how the service behaves
// when credentials are absent.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.send == nil {
		if m.logg != nil {
			ctx = m.logg.WithFields(ctx, map[string]any{"to": to, "subject": subject})
			m.logg.Warn(ctx, "email credentials missing, skipping delivery")
		}
		return nil
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.fromAddr),
		subject,
		mail.NewEmail("", to),
		body,
		"",
	)

	status, err := m.send(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if status >= 400 {
		return fmt.Errorf("sendgrid send: unexpected status %d", status)
	}
	if m.logg != nil {
		m.logg.Info(m.logg.WithField(ctx, "to", to), "email sent")
	}
	return nil
}
