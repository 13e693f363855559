package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	mockRepo "accounts/internal/mocks/repository"
	mockSvc "accounts/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func performAuthenticated(t *testing.T, m *AuthMiddleware, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/accounts/current", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := m.Authenticate(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, reached
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	m := NewAuthMiddleware(tokenSvc, accountRepo)

	accountID := uuid.New()
	token := "valid-token"
	account := &entity.Account{
		ID:           accountID,
		Email:        "test@example.com",
		Verified:     true,
		SessionToken: &token,
	}

	tokenSvc.EXPECT().Validate(token).Return(&service.Claims{AccountID: accountID}, nil)
	accountRepo.EXPECT().FindByID(mock.Anything, accountID).Return(account, nil)

	rec, reached := performAuthenticated(t, m, "Bearer "+token)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	m := NewAuthMiddleware(tokenSvc, accountRepo)

	rec, reached := performAuthenticated(t, m, "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	m := NewAuthMiddleware(tokenSvc, accountRepo)

	rec, reached := performAuthenticated(t, m, "Basic dXNlcjpwYXNz")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	m := NewAuthMiddleware(tokenSvc, accountRepo)

	tokenSvc.EXPECT().Validate("garbage").Return(nil, domainerrors.ErrInvalidToken)

	rec, reached := performAuthenticated(t, m, "Bearer garbage")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_RevokedSession(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	m := NewAuthMiddleware(tokenSvc, accountRepo)

	accountID := uuid.New()
	// The token still validates cryptographically, but logout cleared
	// the stored session so it no longer matches.
	account := &entity.Account{
		ID:           accountID,
		Email:        "test@example.com",
		Verified:     true,
		SessionToken: nil,
	}

	tokenSvc.EXPECT().Validate("stale-token").Return(&service.Claims{AccountID: accountID}, nil)
	accountRepo.EXPECT().FindByID(mock.Anything, accountID).Return(account, nil)

	rec, reached := performAuthenticated(t, m, "Bearer stale-token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked")
}

func TestAuthMiddleware_Authenticate_SupersededSession(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	m := NewAuthMiddleware(tokenSvc, accountRepo)

	accountID := uuid.New()
	newer := "newer-token"
	account := &entity.Account{
		ID:           accountID,
		Email:        "test@example.com",
		Verified:     true,
		SessionToken: &newer,
	}

	tokenSvc.EXPECT().Validate("older-token").Return(&service.Claims{AccountID: accountID}, nil)
	accountRepo.EXPECT().FindByID(mock.Anything, accountID).Return(account, nil)

	rec, reached := performAuthenticated(t, m, "Bearer older-token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
