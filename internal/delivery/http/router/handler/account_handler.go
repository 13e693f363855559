// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"accounts/internal/delivery/http/middleware"
	"accounts/internal/delivery/http/response"
	"accounts/internal/domain/entity"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// accountView is the public shape of an account. The password hash and
// tokens never leave the service.
type accountView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountView(account *entity.Account) *accountView {
	if account == nil {
		return nil
	}

	return &accountView{
		ID:        account.ID.String(),
		Email:     account.Email,
		AvatarURL: account.AvatarURL,
		Verified:  account.Verified,
		CreatedAt: account.CreatedAt,
	}
}

// Signup handles the account registration request.
func (h *AccountHandler) Signup(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAccountView(output.Account), "Account registered successfully")
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"account": toAccountView(output.Account),
		"token":   output.SessionToken,
	}, "Login successful")
}

// Verify handles the verification callback link from the mail.
func (h *AccountHandler) Verify(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Verification token is required")
	}

	output, err := h.uc.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountView(output.Account), "Account verified successfully")
}

// verifyAgainInput carries the address to re-send the verification mail to.
type verifyAgainInput struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyAgain handles the re-send verification mail request.
func (h *AccountHandler) VerifyAgain(c echo.Context) error {
	var input *verifyAgainInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.VerifyAgain(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountView(output.Account), "Verification mail sent")
}

// Current returns the authenticated account.
func (h *AccountHandler) Current(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	current, err := h.uc.Current(c.Request().Context(), account.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountView(current), "Account retrieved successfully")
}

// Logout clears the stored session token for the authenticated account.
func (h *AccountHandler) Logout(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.uc.Logout(c.Request().Context(), account.ID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// updateAvatarInput carries the externally hosted avatar URL.
type updateAvatarInput struct {
	AvatarURL string `json:"avatar_url" validate:"required,url"`
}

// UpdateAvatar stores a new avatar URL for the authenticated account.
func (h *AccountHandler) UpdateAvatar(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input *updateAvatarInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid avatar input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.uc.UpdateAvatar(c.Request().Context(), account.ID, input.AvatarURL)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountView(updated), "Avatar updated successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
