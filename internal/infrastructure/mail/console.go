package mail

import (
	"context"
	"log/slog"
)

// Console writes messages to the log instead of delivering them. Intended for
// local development.
type Console struct {
	log *slog.Logger
}

func NewConsole(log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{log: log}
}

func (c *Console) SendEmail(ctx context.Context, to, subject, body string) error {
	c.log.InfoContext(ctx, "email", "to", to, "subject", subject, "body", body)
	return nil
}
