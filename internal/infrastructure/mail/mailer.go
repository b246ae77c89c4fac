package mail

import (
	"context"
	"fmt"

	"github.com/jobportal-auth/internal/config"
)

// Mailer sends a plain-text email to a single address.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// New builds the mailer selected by cfg.EmailBackend.
func New(cfg *config.Config) (Mailer, error) {
	switch cfg.EmailBackend {
	case "", "console":
		return NewConsole(nil), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp backend: SMTP_HOST is required")
		}
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom, cfg.EmailFromName), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid backend: SENDGRID_API_KEY is required")
		}
		return NewSendGrid(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName), nil
	}
	return nil, fmt.Errorf("unknown email backend %q", cfg.EmailBackend)
}
