// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/router/handler"
	"identity/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	HealthHandler       *handler.HealthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	Metrics             *metrics.Metrics
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	healthHandler       *handler.HealthHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
	metrics             *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		healthHandler:       params.HealthHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimitMiddleware: params.RateLimitMiddleware,
		metrics:             params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))

	// Stored profile images
	e.GET("/uploads/profile-images/:name", r.authHandler.ServeProfileImage)

	authGroup := e.Group("/api/auth")
	authGroup.Use(r.rateLimitMiddleware.Handler())
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/signin", r.authHandler.Signin)

		// Routes that require a session token
		authGroup.GET("/profile", r.authHandler.GetProfile, r.authMiddleware.Authenticate)
		authGroup.PUT("/profile", r.authHandler.UpdateProfile, r.authMiddleware.Authenticate)
		authGroup.PUT("/password", r.authHandler.UpdatePassword, r.authMiddleware.Authenticate)
	}
}
