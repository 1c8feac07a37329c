// Package mail implements the outbound-mail collaborator against the SMTP
// server configured in site settings.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

// SettingsSource yields the current SMTP configuration with the password
// already decrypted.
type SettingsSource interface {
	Get(ctx context.Context) (model.Settings, error)
}

// SMTP sends plain-text mail. The client is built per send because operators
// can change the SMTP configuration at runtime.
type SMTP struct {
	settings SettingsSource
	logger   *logger.Logger
}

var _ model.Mailer = (*SMTP)(nil)

func NewSMTP(settings SettingsSource, logger *logger.Logger) *SMTP {
	return &SMTP{settings: settings, logger: logger}
}

func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load smtp settings: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(cfg.SenderName, cfg.SenderEmail); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(cfg.SMTPHost,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPUsername),
		gomail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		return fmt.Errorf("build smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Debug("SMTP mailer: message sent", "to", to, "subject", subject)
	return nil
}
