package service

// AvatarService derives an avatar URL from an email address. The
// derivation is pure and deterministic: the same email always yields
// the same URL. It is consulted only at registration time.
type AvatarService interface {
	URLFor(email string) string
}
