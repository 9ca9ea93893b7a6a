// Package mail delivers transactional email. The server only needs it for
// password recovery, so the surface is a single Send method with a log-only
// implementation for development and an SMTP implementation for deployments.
package mail

import "context"

type Message struct {
	To      string
	Subject string
	Body    string // plain text
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
