package service

import "context"

// VerificationNotifier builds and sends the "verify your email"
// message for an account. Implementations own the callback-URL format:
// a fixed base path followed by the raw verification token segment.
type VerificationNotifier interface {
	SendVerification(ctx context.Context, email, verificationToken string) error
}
