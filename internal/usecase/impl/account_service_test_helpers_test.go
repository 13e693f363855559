package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	mockRepo "accounts/internal/mocks/repository"
	mockSvc "accounts/internal/mocks/service"
	"accounts/internal/usecase"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
	tokenSvc    *mockSvc.MockTokenService
	notifier    *mockSvc.MockVerificationNotifier
	avatarSvc   *mockSvc.MockAvatarService
	publisher   *mockSvc.MockEventPublisher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	notifier := mockSvc.NewMockVerificationNotifier(t)
	avatarSvc := mockSvc.NewMockAvatarService(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAccountService(AccountServiceParams{
		AccountRepo: accountRepo,
		Hasher:      hasher,
		TokenSvc:    tokenSvc,
		Notifier:    notifier,
		AvatarSvc:   avatarSvc,
		Publisher:   publisher,
		Logger:      logger,
	})

	return accountServiceFixtures{
		service:     service,
		accountRepo: accountRepo,
		hasher:      hasher,
		tokenSvc:    tokenSvc,
		notifier:    notifier,
		avatarSvc:   avatarSvc,
		publisher:   publisher,
	}
}

// waitForSignal blocks until the background goroutine under test signals
// completion, so mock expectations are settled before the test returns.
func waitForSignal(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal(msg)
	}
}

func strPtr(s string) *string {
	return &s
}
