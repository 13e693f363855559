// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface. It owns the
// account state machine: Unregistered -> Unverified -> Verified, with
// the session token as an overlay on Verified.
type accountService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokenSvc    service.TokenService
	notifier    service.VerificationNotifier
	avatarSvc   service.AvatarService
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	TokenSvc    service.TokenService
	Notifier    service.VerificationNotifier
	AvatarSvc   service.AvatarService
	Publisher   service.EventPublisher `optional:"true"`
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		tokenSvc:    params.TokenSvc,
		notifier:    params.Notifier,
		avatarSvc:   params.AvatarSvc,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process. The store's
// unique index on email is the final arbiter for duplicates; there is
// no application-level pre-check closing its eyes to concurrent
// registrations.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	verificationToken := uuid.New().String()
	account := &entity.Account{
		Email:             input.Email,
		PasswordHash:      hashedPassword,
		AvatarURL:         srv.avatarSvc.URLFor(input.Email),
		VerificationToken: &verificationToken,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		srv.log(ctx).Warn("Failed to create account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account during registration")
	}

	// Verification mail and lifecycle event are fire-and-forget: the
	// registration result never waits on or reflects their outcome.
	go srv.dispatchVerification(account.Email, verificationToken)
	go srv.publishEvent(ctx, service.EventAccountRegistered, account)

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))

	return &usecase.RegisterOutput{Account: account}, nil
}

// Login verifies credentials and issues a brand-new session token.
// Unknown email, wrong password and an unverified account all collapse
// into ErrInvalidCredentials so the response leaks nothing about which
// case occurred; the wrap message keeps the true cause visible to logs
// and tests.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("cause", "unknown email"))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	// bcrypt comparison is CPU-bound; it runs outside any transaction.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("cause", "password mismatch"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	// Unverified accounts never obtain a session, even with correct
	// credentials. This is the verification gate, not an oversight.
	if !account.Verified {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("cause", "account not verified"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "account not verified")
	}

	// Every login mints a fresh token; a still-valid prior token is
	// never reused.
	sessionToken, err := srv.tokenSvc.Generate(account.ID, account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	if err := srv.accountRepo.UpdateSessionToken(ctx, account.ID, &sessionToken); err != nil {
		srv.log(ctx).Error("Failed to persist session token", slog.Any("error", err), slog.Any("accountID", account.ID))

		return nil, errors.Wrap(err, "failed to persist session token")
	}

	account.SessionToken = &sessionToken

	srv.log(ctx).Debug("Logged in successfully", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{Account: account, SessionToken: sessionToken}, nil
}

// Logout clears the session token. Clearing an already-absent token is
// a no-op success, so the operation is idempotent.
func (srv *accountService) Logout(ctx context.Context, accountID uuid.UUID) error {
	srv.log(ctx).Info("Attempting to log out", slog.Any("accountID", accountID))

	if err := srv.accountRepo.UpdateSessionToken(ctx, accountID, nil); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "logout for unknown account")
		}

		srv.log(ctx).Error("Failed to clear session token", slog.Any("error", err), slog.Any("accountID", accountID))

		return errors.Wrap(err, "failed to clear session token")
	}

	srv.log(ctx).Info("Successfully logged out", slog.Any("accountID", accountID))

	return nil
}

// VerifyToken consumes a verification token exactly once. A token that
// never existed and a token already consumed are indistinguishable by
// design, so the endpoint cannot be used as a token-guessing oracle.
func (srv *accountService) VerifyToken(ctx context.Context, verificationToken string) (*usecase.VerifyOutput, error) {
	account, err := srv.accountRepo.ConsumeVerificationToken(ctx, verificationToken)
	if err != nil {
		if errors.Is(err, repository.ErrVerificationTokenNotFound) {
			return nil, errors.Wrap(domainerrors.ErrVerificationNotFound, "no account holds this verification token")
		}

		srv.log(ctx).Error("Failed to consume verification token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to consume verification token")
	}

	go srv.publishEvent(ctx, service.EventAccountVerified, account)

	srv.log(ctx).Info("Account verified", slog.Any("accountID", account.ID))

	return &usecase.VerifyOutput{Account: account}, nil
}

// VerifyAgain re-dispatches the verification mail for an unverified
// account, reusing the existing token. The token is never rotated on
// resend, so earlier mails stay valid.
func (srv *accountService) VerifyAgain(ctx context.Context, email string) (*usecase.VerifyOutput, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrVerificationNotFound, "no account for this email")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if account.Verified {
		srv.log(ctx).Info("Resend rejected for verified account", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrAlreadyVerified, "account already verified")
	}

	if account.VerificationToken == nil {
		// Unverified with no token violates the store invariant.
		srv.log(ctx).Error("Unverified account holds no verification token", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInternalError.WrapMessage("account in inconsistent verification state")
	}

	go srv.dispatchVerification(account.Email, *account.VerificationToken)

	// Success means the mail was dispatched, not delivered; transport
	// outcome is invisible to the caller.
	return &usecase.VerifyOutput{Account: account}, nil
}

// Current returns the account for the authenticated bearer.
func (srv *accountService) Current(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return account, nil
}

// UpdateAvatar stores an avatar URL produced by the external upload
// pipeline. Image processing itself happens outside this service.
func (srv *accountService) UpdateAvatar(ctx context.Context, accountID uuid.UUID, avatarURL string) (*entity.Account, error) {
	if err := srv.accountRepo.UpdateAvatarURL(ctx, accountID, avatarURL); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "avatar update for unknown account")
		}

		srv.log(ctx).Error("Failed to update avatar", slog.Any("error", err), slog.Any("accountID", accountID))

		return nil, errors.Wrap(err, "failed to update avatar url")
	}

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload account after avatar update")
	}

	srv.log(ctx).Info("Avatar updated", slog.Any("accountID", accountID))

	return account, nil
}

// dispatchVerification delivers the verification mail on a detached
// context: no cancellation, no timeout, failure only logged. The
// calling operation has already returned by the time this runs.
func (srv *accountService) dispatchVerification(email, verificationToken string) {
	ctx := context.Background()

	if err := srv.notifier.SendVerification(ctx, email, verificationToken); err != nil {
		srv.logger.Error("Failed to send verification mail", slog.String("email", email), slog.Any("error", err))

		return
	}

	srv.logger.Info("Verification mail sent", slog.String("email", email))
}

// publishEvent emits a best-effort lifecycle event. Publishing is
// optional; with no publisher configured this is a no-op.
func (srv *accountService) publishEvent(ctx context.Context, eventType string, account *entity.Account) {
	if srv.publisher == nil {
		return
	}

	event := &service.AccountEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      eventType,
		AccountID: account.ID.String(),
		Email:     account.Email,
	}

	if err := srv.publisher.PublishAccountEvent(context.Background(), event); err != nil {
		srv.logger.Warn("Failed to publish account event", slog.String("type", eventType), slog.Any("error", err))
	}
}
