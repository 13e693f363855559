package mail

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"accounts/config"
	"accounts/internal/domain/service"
	mockSvc "accounts/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotifierConfig(baseURL, from string) *config.Config {
	cfg := &config.Config{}
	cfg.Verification.BaseURL = baseURL
	if from != "" {
		cfg.SMTP = &config.SMTPConfig{From: from}
	}

	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVerificationNotifier_SendVerification(t *testing.T) {
	mailer := mockSvc.NewMockMailer(t)
	cfg := newNotifierConfig("https://accounts.example.com/api/accounts/auth/verify/", "noreply@example.com")
	notifier := NewVerificationNotifier(cfg, mailer, discardLogger())

	var sent *service.MailMessage
	mailer.EXPECT().
		Send(mock.Anything, mock.AnythingOfType("*service.MailMessage")).
		Run(func(ctx context.Context, msg *service.MailMessage) {
			sent = msg
		}).
		Return(nil)

	err := notifier.SendVerification(context.Background(), "test@example.com", "token-123")

	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, "noreply@example.com", sent.From)
	assert.Equal(t, "test@example.com", sent.To)
	assert.NotEmpty(t, sent.Subject)

	// Callback link is the base URL plus the raw token segment, with no
	// doubled slash from a trailing-slash base.
	assert.Contains(t, sent.Body, "https://accounts.example.com/api/accounts/auth/verify/token-123")
	assert.NotContains(t, sent.Body, "verify//token-123")

	// The QR code of the link rides along as an inline image.
	assert.NotEmpty(t, sent.InlinePNG)
	assert.NotEmpty(t, sent.InlinePNGName)
	assert.Contains(t, sent.Body, "cid:"+sent.InlinePNGName)
}

func TestVerificationNotifier_PropagatesTransportError(t *testing.T) {
	mailer := mockSvc.NewMockMailer(t)
	cfg := newNotifierConfig("https://accounts.example.com/verify", "")
	notifier := NewVerificationNotifier(cfg, mailer, discardLogger())

	mailer.EXPECT().
		Send(mock.Anything, mock.AnythingOfType("*service.MailMessage")).
		Return(errors.New("smtp unreachable"))

	err := notifier.SendVerification(context.Background(), "test@example.com", "token-123")

	assert.Error(t, err)
}

func TestNewMailer_FallsBackToNoop(t *testing.T) {
	logger := discardLogger()

	for _, cfg := range []*config.Config{
		nil,
		{},
		{SMTP: &config.SMTPConfig{}},
	} {
		mailer := NewMailer(cfg, logger)
		require.NotNil(t, mailer)

		// The no-op transport drops mail without error.
		err := mailer.Send(context.Background(), &service.MailMessage{To: "test@example.com"})
		assert.NoError(t, err)
	}
}
