// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"accounts/internal/delivery/http/middleware"
	"accounts/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler      *handler.AccountHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:      params.AccountHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	accountGroup := e.Group("/api/accounts")
	{
		accountGroup.POST("/signup", r.accountHandler.Signup)
		accountGroup.POST("/login", r.accountHandler.Login)
		accountGroup.GET("/auth/verify/:token", r.accountHandler.Verify)
		accountGroup.POST("/verify", r.accountHandler.VerifyAgain)
	}

	// Routes that require an authenticated, verified session
	sessionGroup := e.Group("/api/accounts")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.GET("/current", r.accountHandler.Current)
		sessionGroup.POST("/logout", r.accountHandler.Logout)
		sessionGroup.PATCH("/avatars", r.accountHandler.UpdateAvatar)
	}
}
