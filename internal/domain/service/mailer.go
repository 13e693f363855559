package service

import "context"

// MailMessage is a single outbound mail.
type MailMessage struct {
	From    string
	To      string
	Subject string
	Body    string // HTML body

	// InlinePNG, when non-empty, is embedded into the message and
	// referenced from the body via cid:InlinePNGName.
	InlinePNG     []byte
	InlinePNGName string
}

// Mailer defines the outbound mail transport. The lifecycle service
// dispatches through it fire-and-forget: callers never block on or
// branch on delivery, failures are only logged.
type Mailer interface {
	Send(ctx context.Context, msg *MailMessage) error
}
