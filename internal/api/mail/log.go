package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of delivering them. It is the
// default when no SMTP host is configured, which keeps local development and
// tests free of a mail dependency.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("mail (not sent, log mailer active)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
