// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the single aggregate of the service. It moves through the
// states Unregistered -> Unverified -> Verified; once verified it never
// goes back. Session-token presence is an orthogonal overlay on the
// Verified state.
type Account struct {
	ID                uuid.UUID // Store-assigned identifier, immutable.
	Email             string    // Unique login key, case-sensitive as provided, immutable after creation.
	PasswordHash      string    // bcrypt digest of the credential; the plaintext is never stored.
	AvatarURL         string    // Derived from the email at creation, replaceable later.
	VerificationToken *string   // Single-use opaque token; non-nil exactly while the account is unverified.
	Verified          bool      // Flips to true exactly once, when the verification token is consumed.
	SessionToken      *string   // Most recently issued bearer token; nil when logged out.
	CreatedAt         time.Time // Timestamp of when this account was created.
	UpdatedAt         time.Time // Timestamp of the last modification to this account.
}

// LoggedIn reports whether the account currently holds a session token.
func (a *Account) LoggedIn() bool {
	return a.SessionToken != nil && *a.SessionToken != ""
}
