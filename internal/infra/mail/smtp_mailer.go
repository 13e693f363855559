// Package mail implements the outbound mail transport and the
// verification-message construction on top of it.
package mail

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"accounts/config"
	"accounts/internal/domain/service"
)

// smtpMailer delivers messages over SMTP using gomail.
type smtpMailer struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
}

// noopMailer is used when no SMTP transport is configured; it logs and
// drops every message.
type noopMailer struct {
	logger *slog.Logger
}

// NewMailer selects the transport from configuration. With no SMTP
// section the service still runs; verification mails are dropped with
// a log line instead of failing operations.
func NewMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg == nil || cfg.SMTP == nil || cfg.SMTP.Host == "" {
		logger.Info("SMTP not configured, using no-op mailer")

		return &noopMailer{logger: logger}
	}

	return &smtpMailer{cfg: cfg.SMTP, logger: logger}
}

// Send delivers a single message. Dial failures and rejected
// recipients surface as errors; the caller decides whether they matter.
func (m *smtpMailer) Send(_ context.Context, msg *service.MailMessage) error {
	from := msg.From
	if from == "" {
		from = m.cfg.From
	}

	message := gomail.NewMessage()
	message.SetHeader("From", from)
	message.SetHeader("To", msg.To)
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/html", msg.Body)

	if len(msg.InlinePNG) > 0 && msg.InlinePNGName != "" {
		png := msg.InlinePNG
		message.Embed(msg.InlinePNGName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(png)

			return err
		}))
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	if err := dialer.DialAndSend(message); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	m.logger.Debug("Mail sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))

	return nil
}

// Send drops the message.
func (m *noopMailer) Send(_ context.Context, msg *service.MailMessage) error {
	m.logger.Debug("[NoopMailer] Dropping mail", slog.String("to", msg.To), slog.String("subject", msg.Subject))

	return nil
}
