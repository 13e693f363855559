// Package middleware contains the echo middleware for the HTTP delivery.
package middleware

import (
	"strings"

	"accounts/internal/delivery/http/response"
	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyAccount   = "account"
)

// AuthMiddleware validates bearer session tokens and resolves the
// authenticated account. A token is accepted only while it is the one
// currently stored on the account; logout revokes it server-side even
// before its expiry.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	accountRepo repository.AccountRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, accountRepo repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, accountRepo: accountRepo}
}

// Authenticate is the core middleware function that validates the session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		account, err := m.accountRepo.FindByID(c.Request().Context(), claims.AccountID)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		// The presented token must match the stored one; a logged-out or
		// re-logged-in account rejects older tokens.
		if account.SessionToken == nil || *account.SessionToken != tokenString {
			return response.Unauthorized(c, "INVALID_TOKEN", "Session has been revoked")
		}

		if !account.Verified {
			return response.Unauthorized(c, "UNAUTHORIZED", "Account is not verified")
		}

		// Set account info on the context for handlers to use
		c.Set(ContextKeyAccountID, account.ID)
		c.Set(ContextKeyAccount, account)

		return next(c)
	}
}

// AccountFromContext returns the authenticated account set by Authenticate.
func AccountFromContext(c echo.Context) (*entity.Account, bool) {
	account, ok := c.Get(ContextKeyAccount).(*entity.Account)

	return account, ok
}
