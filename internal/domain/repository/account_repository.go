// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence. These let the
// application layer handle specific outcomes without depending on
// database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account not found")

	// ErrVerificationTokenNotFound is returned when no account holds the
	// given verification token. It covers both "never existed" and
	// "already consumed" identically.
	ErrVerificationTokenNotFound = errors.New("verification token not found")
)

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account. Email uniqueness is enforced by the
	// storage layer's unique index, not by an application-level
	// pre-check, so two concurrent registrations for the same email
	// cannot race past each other.
	Create(ctx context.Context, account *entity.Account) error

	// ConsumeVerificationToken atomically finds the account holding the
	// token, clears the token and marks the account verified, returning
	// the updated account. It is a single find-and-mutate statement;
	// there is no separate read-then-write window.
	ConsumeVerificationToken(ctx context.Context, token string) (*entity.Account, error)

	// UpdateSessionToken atomically sets (or, with nil, clears) the
	// session token for the given account.
	UpdateSessionToken(ctx context.Context, id uuid.UUID, token *string) error

	// UpdateAvatarURL replaces the stored avatar URL for the given account.
	UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error
}
