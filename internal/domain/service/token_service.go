package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by session tokens.
type Claims struct {
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for minting and validating session
// tokens. The signing key is process-wide configuration loaded once at
// startup and handed to the implementation's constructor.
type TokenService interface {
	// Generate mints a fresh, signed, time-bounded bearer token over the
	// account's public identity claims. Every call returns a new token.
	Generate(accountID uuid.UUID, email string) (string, error)

	// Validate checks signature, shape and expiry (wall clock at call
	// time) and returns the embedded claims.
	Validate(tokenString string) (*Claims, error)
}
