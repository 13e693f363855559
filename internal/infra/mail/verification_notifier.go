package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"accounts/config"
	"accounts/internal/domain/service"
)

const (
	verificationSubject = "Verify your email"
	qrImageName         = "verify-qr.png"
	qrImageSize         = 200
)

// verificationNotifier builds the "verify your email" message and
// hands it to the mail transport. The callback link is the configured
// base URL followed by the raw token segment.
type verificationNotifier struct {
	mailer  service.Mailer
	baseURL string
	from    string
	logger  *slog.Logger
}

// NewVerificationNotifier is the constructor for verificationNotifier.
func NewVerificationNotifier(cfg *config.Config, mailer service.Mailer, logger *slog.Logger) service.VerificationNotifier {
	from := ""
	if cfg.SMTP != nil {
		from = cfg.SMTP.From
	}

	return &verificationNotifier{
		mailer:  mailer,
		baseURL: strings.TrimRight(cfg.Verification.BaseURL, "/"),
		from:    from,
		logger:  logger,
	}
}

// SendVerification sends the verification mail. The body carries the
// callback link both as text and as an inline QR code for mobile
// clients; QR generation failure degrades to a link-only mail.
func (n *verificationNotifier) SendVerification(ctx context.Context, email, verificationToken string) error {
	link := n.CallbackURL(verificationToken)

	msg := &service.MailMessage{
		From:    n.from,
		To:      email,
		Subject: verificationSubject,
	}

	png, err := qrcode.Encode(link, qrcode.Medium, qrImageSize)
	if err != nil {
		n.logger.Warn("Failed to encode verification QR code", slog.Any("error", err))
	} else {
		msg.InlinePNG = png
		msg.InlinePNGName = qrImageName
	}

	msg.Body = buildVerificationBody(link, msg.InlinePNGName)

	return n.mailer.Send(ctx, msg)
}

// CallbackURL returns the verification callback link for a token:
// the fixed base path followed by the raw token segment.
func (n *verificationNotifier) CallbackURL(verificationToken string) string {
	return n.baseURL + "/" + verificationToken
}

func buildVerificationBody(link, qrName string) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Verify your email</h2>
    <p>Follow the link below to activate your account:</p>
`)
	fmt.Fprintf(&sb, "    <p><a href=%q>%s</a></p>\n", link, link)

	if qrName != "" {
		fmt.Fprintf(&sb, "    <p><img src=\"cid:%s\" alt=\"Verification QR code\" /></p>\n", qrName)
	}

	sb.WriteString(`    <p>If you did not sign up, ignore this message.</p>
  </div>
</body>
</html>`)

	return sb.String()
}
