package impl

import (
	"context"
	"testing"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}

	mailSent := make(chan struct{})
	eventPublished := make(chan struct{})

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.avatarSvc.EXPECT().URLFor(input.Email).Return("https://avatars.example.com/abc")

	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			account.ID = uuid.New()
			account.CreatedAt = time.Now()
			account.UpdatedAt = time.Now()
		}).
		Return(nil)

	fx.notifier.EXPECT().
		SendVerification(mock.Anything, input.Email, mock.AnythingOfType("string")).
		Run(func(ctx context.Context, email string, verificationToken string) {
			close(mailSent)
		}).
		Return(nil)

	fx.publisher.EXPECT().
		PublishAccountEvent(mock.Anything, mock.AnythingOfType("*service.AccountEvent")).
		Run(func(ctx context.Context, event *service.AccountEvent) {
			assert.Equal(t, service.EventAccountRegistered, event.Type)
			close(eventPublished)
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Email, output.Account.Email)
	assert.Equal(t, "hashed_password", output.Account.PasswordHash)
	assert.Equal(t, "https://avatars.example.com/abc", output.Account.AvatarURL)
	assert.False(t, output.Account.Verified)
	require.NotNil(t, output.Account.VerificationToken)
	assert.NotEmpty(t, *output.Account.VerificationToken)
	assert.Nil(t, output.Account.SessionToken)

	waitForSignal(t, mailSent, "verification mail was never dispatched")
	waitForSignal(t, eventPublished, "registration event was never published")
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.avatarSvc.EXPECT().URLFor(input.Email).Return("https://avatars.example.com/abc")

	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrEmailAlreadyExists.WrapMessage("email already exists"))

	output, err := fx.service.Register(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyExists))
	// No mail and no event expectations: a failed registration must not
	// dispatch anything.
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("", errors.New("bcrypt exploded"))

	output, err := fx.service.Register(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestAccountService_Register_MailFailureDoesNotFailRegistration(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}

	mailAttempted := make(chan struct{})
	eventPublished := make(chan struct{})

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.avatarSvc.EXPECT().URLFor(input.Email).Return("https://avatars.example.com/abc")

	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			account.ID = uuid.New()
		}).
		Return(nil)

	fx.notifier.EXPECT().
		SendVerification(mock.Anything, input.Email, mock.AnythingOfType("string")).
		Run(func(ctx context.Context, email string, verificationToken string) {
			close(mailAttempted)
		}).
		Return(errors.New("smtp unreachable"))

	fx.publisher.EXPECT().
		PublishAccountEvent(mock.Anything, mock.AnythingOfType("*service.AccountEvent")).
		Run(func(ctx context.Context, event *service.AccountEvent) {
			close(eventPublished)
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, output)

	waitForSignal(t, mailAttempted, "verification mail was never attempted")
	waitForSignal(t, eventPublished, "registration event was never published")
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}
	account := &entity.Account{
		ID:           accountID,
		Email:        input.Email,
		PasswordHash: "hashed_password",
		Verified:     true,
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(account, nil)
	fx.hasher.EXPECT().Check(input.Password, "hashed_password").Return(true)
	fx.tokenSvc.EXPECT().Generate(accountID, input.Email).Return("session-token-1", nil)
	fx.accountRepo.EXPECT().UpdateSessionToken(ctx, accountID, strPtr("session-token-1")).Return(nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "session-token-1", output.SessionToken)
	require.NotNil(t, output.Account.SessionToken)
	assert.Equal(t, "session-token-1", *output.Account.SessionToken)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "Password123!",
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "wrong",
	}
	account := &entity.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: "hashed_password",
		Verified:     true,
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(account, nil)
	fx.hasher.EXPECT().Check(input.Password, "hashed_password").Return(false)

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_UnverifiedAccount(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}
	account := &entity.Account{
		ID:                uuid.New(),
		Email:             input.Email,
		PasswordHash:      "hashed_password",
		Verified:          false,
		VerificationToken: strPtr("pending-token"),
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(account, nil)
	fx.hasher.EXPECT().Check(input.Password, "hashed_password").Return(true)

	output, err := fx.service.Login(ctx, input)

	// Correct credentials are not enough; the verified gate folds into
	// the same indistinguishable credential failure.
	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_FreshTokenPerLogin(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	}
	account := &entity.Account{
		ID:           accountID,
		Email:        input.Email,
		PasswordHash: "hashed_password",
		Verified:     true,
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(account, nil).Times(2)
	fx.hasher.EXPECT().Check(input.Password, "hashed_password").Return(true).Times(2)
	fx.tokenSvc.EXPECT().Generate(accountID, input.Email).Return("session-token-1", nil).Once()
	fx.tokenSvc.EXPECT().Generate(accountID, input.Email).Return("session-token-2", nil).Once()
	fx.accountRepo.EXPECT().UpdateSessionToken(ctx, accountID, strPtr("session-token-1")).Return(nil).Once()
	fx.accountRepo.EXPECT().UpdateSessionToken(ctx, accountID, strPtr("session-token-2")).Return(nil).Once()

	first, err := fx.service.Login(ctx, input)
	require.NoError(t, err)

	second, err := fx.service.Login(ctx, input)
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionToken, second.SessionToken)
}

func TestAccountService_Logout_Idempotent(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accountRepo.EXPECT().UpdateSessionToken(ctx, accountID, (*string)(nil)).Return(nil).Times(2)

	require.NoError(t, fx.service.Logout(ctx, accountID))
	// A second logout with no stored token is still a success.
	require.NoError(t, fx.service.Logout(ctx, accountID))
}

func TestAccountService_Logout_UnknownAccount(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accountRepo.EXPECT().UpdateSessionToken(ctx, accountID, (*string)(nil)).Return(repository.ErrAccountNotFound)

	err := fx.service.Logout(ctx, accountID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_VerifyToken_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()
	verified := &entity.Account{
		ID:       accountID,
		Email:    "test@example.com",
		Verified: true,
	}

	eventPublished := make(chan struct{})

	fx.accountRepo.EXPECT().ConsumeVerificationToken(ctx, "the-token").Return(verified, nil)
	fx.publisher.EXPECT().
		PublishAccountEvent(mock.Anything, mock.AnythingOfType("*service.AccountEvent")).
		Run(func(ctx context.Context, event *service.AccountEvent) {
			assert.Equal(t, service.EventAccountVerified, event.Type)
			assert.Equal(t, accountID.String(), event.AccountID)
			close(eventPublished)
		}).
		Return(nil)

	output, err := fx.service.VerifyToken(ctx, "the-token")

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.True(t, output.Account.Verified)
	assert.Nil(t, output.Account.VerificationToken)

	waitForSignal(t, eventPublished, "verified event was never published")
}

func TestAccountService_VerifyToken_UnknownOrConsumed(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	// A consumed token and a token that never existed surface identically.
	fx.accountRepo.EXPECT().
		ConsumeVerificationToken(ctx, "spent-token").
		Return(nil, repository.ErrVerificationTokenNotFound)

	output, err := fx.service.VerifyToken(ctx, "spent-token")

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationNotFound))
}

func TestAccountService_VerifyAgain_ReusesExistingToken(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:                uuid.New(),
		Email:             "test@example.com",
		Verified:          false,
		VerificationToken: strPtr("original-token"),
	}

	mailSent := make(chan struct{})

	fx.accountRepo.EXPECT().FindByEmail(ctx, account.Email).Return(account, nil)
	fx.notifier.EXPECT().
		SendVerification(mock.Anything, account.Email, "original-token").
		Run(func(ctx context.Context, email string, verificationToken string) {
			close(mailSent)
		}).
		Return(nil)

	output, err := fx.service.VerifyAgain(ctx, account.Email)

	require.NoError(t, err)
	require.NotNil(t, output)
	// The resend must not rotate the token; mails already in flight stay valid.
	require.NotNil(t, output.Account.VerificationToken)
	assert.Equal(t, "original-token", *output.Account.VerificationToken)

	waitForSignal(t, mailSent, "verification mail was never re-dispatched")
}

func TestAccountService_VerifyAgain_AlreadyVerified(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Verified: true,
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, account.Email).Return(account, nil)

	output, err := fx.service.VerifyAgain(ctx, account.Email)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyVerified))
}

func TestAccountService_VerifyAgain_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.VerifyAgain(ctx, "ghost@example.com")

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationNotFound))
}

func TestAccountService_VerifyAgain_InconsistentState(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Verified: false,
		// Unverified but no token: the store invariant is broken.
		VerificationToken: nil,
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, account.Email).Return(account, nil)

	output, err := fx.service.VerifyAgain(ctx, account.Email)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
}

func TestAccountService_Current_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{
		ID:       accountID,
		Email:    "test@example.com",
		Verified: true,
	}

	fx.accountRepo.EXPECT().FindByID(ctx, accountID).Return(account, nil)

	current, err := fx.service.Current(ctx, accountID)

	require.NoError(t, err)
	assert.Equal(t, account, current)
}

func TestAccountService_Current_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accountRepo.EXPECT().FindByID(ctx, accountID).Return(nil, repository.ErrAccountNotFound)

	current, err := fx.service.Current(ctx, accountID)

	assert.Error(t, err)
	assert.Nil(t, current)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_UpdateAvatar_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()
	updated := &entity.Account{
		ID:        accountID,
		Email:     "test@example.com",
		AvatarURL: "https://cdn.example.com/avatars/new.png",
		Verified:  true,
	}

	fx.accountRepo.EXPECT().
		UpdateAvatarURL(ctx, accountID, "https://cdn.example.com/avatars/new.png").
		Return(nil)
	fx.accountRepo.EXPECT().FindByID(ctx, accountID).Return(updated, nil)

	account, err := fx.service.UpdateAvatar(ctx, accountID, "https://cdn.example.com/avatars/new.png")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/new.png", account.AvatarURL)
}

func TestAccountService_UpdateAvatar_UnknownAccount(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accountRepo.EXPECT().
		UpdateAvatarURL(ctx, accountID, "https://cdn.example.com/avatars/new.png").
		Return(repository.ErrAccountNotFound)

	account, err := fx.service.UpdateAvatar(ctx, accountID, "https://cdn.example.com/avatars/new.png")

	assert.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}
