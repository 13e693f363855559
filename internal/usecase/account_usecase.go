// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account. No session token
// exists yet; the account starts unverified.
type RegisterOutput struct {
	Account *entity.Account
}

// LoginOutput returns the account together with its freshly issued
// session token.
type LoginOutput struct {
	Account      *entity.Account
	SessionToken string
}

// VerifyOutput returns the account affected by a verification operation.
type VerifyOutput struct {
	Account *entity.Account
}

// AccountUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates an unverified account and dispatches the
	// verification mail fire-and-forget.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and the verified gate, then issues and
	// persists a brand-new session token. Unknown email, wrong password
	// and unverified account are indistinguishable to the caller.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout clears the session token. Idempotent for existing accounts.
	Logout(ctx context.Context, accountID uuid.UUID) error

	// VerifyToken consumes a verification token exactly once.
	VerifyToken(ctx context.Context, verificationToken string) (*VerifyOutput, error)

	// VerifyAgain re-sends the verification mail for an unverified
	// account, reusing its existing token.
	VerifyAgain(ctx context.Context, email string) (*VerifyOutput, error)

	// Current returns the account for the authenticated bearer.
	Current(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)

	// UpdateAvatar stores an externally produced avatar URL.
	UpdateAvatar(ctx context.Context, accountID uuid.UUID, avatarURL string) (*entity.Account, error)
}
