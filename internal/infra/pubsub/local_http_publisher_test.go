package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type noopLifecycle struct{}

func (noopLifecycle) Append(fx.Hook) {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PublishAccountEvent(t *testing.T) {
	var received PubSubPushMessage
	var gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, testLogger())

	event := &service.AccountEvent{
		RequestID: "req-123",
		Type:      service.EventAccountRegistered,
		AccountID: "account-1",
		Email:     "test@example.com",
	}

	require.NoError(t, publisher.PublishAccountEvent(context.Background(), event))

	assert.Equal(t, "req-123", gotRequestID)
	assert.Equal(t, service.EventAccountRegistered, received.Message.Attributes["type"])
	assert.Equal(t, "account-1", received.Message.Attributes["account_id"])
	assert.Equal(t, "req-123", received.Message.Attributes["request_id"])
	assert.NotEmpty(t, received.Message.MessageID)

	// The event payload rides base64-encoded in the push envelope.
	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.AccountEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_ConsumerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, testLogger())

	err := publisher.PublishAccountEvent(context.Background(), &service.AccountEvent{
		Type:      service.EventAccountVerified,
		AccountID: "account-1",
	})

	assert.Error(t, err)
}

func TestNewEventPublisher_DefaultsToNoop(t *testing.T) {
	for _, cfg := range []*config.Config{
		{},
		{PubSub: &config.PubSubConfig{}},
	} {
		publisher, err := NewEventPublisher(PublisherParams{
			Lc:     noopLifecycle{},
			Ctx:    context.Background(),
			Config: cfg,
			Logger: testLogger(),
		})

		require.NoError(t, err)
		require.NotNil(t, publisher)
		assert.NoError(t, publisher.PublishAccountEvent(context.Background(), &service.AccountEvent{Type: "noop"}))
		assert.NoError(t, publisher.Close())
	}
}

func TestNewEventPublisher_RejectsIncompleteConfig(t *testing.T) {
	cases := []*config.PubSubConfig{
		{Provider: ProviderLocal},
		{Provider: ProviderGoogle},
		{Provider: ProviderGoogle, ProjectID: "proj"},
		{Provider: "kafka"},
	}

	for _, psCfg := range cases {
		publisher, err := NewEventPublisher(PublisherParams{
			Lc:     noopLifecycle{},
			Ctx:    context.Background(),
			Config: &config.Config{PubSub: psCfg},
			Logger: testLogger(),
		})

		assert.Error(t, err)
		assert.Nil(t, publisher)
	}
}
