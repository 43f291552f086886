package middleware

import (
	"log/slog"

	"identity/config"
	"identity/internal/delivery/api/response"
	deliverycontext "identity/internal/delivery/context"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// RateLimitMiddleware limits requests per client address on the auth routes.
type RateLimitMiddleware struct {
	store   echomiddleware.RateLimiterStore
	enabled bool
	logger  *slog.Logger
}

// NewRateLimitMiddleware creates the limiter over the configured store.
func NewRateLimitMiddleware(store echomiddleware.RateLimiterStore, cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		store:   store,
		enabled: cfg.RateLimit.Enabled,
		logger:  logger,
	}
}

// Handler returns the echo middleware, or a pass-through when limiting is disabled.
func (m *RateLimitMiddleware) Handler() echo.MiddlewareFunc {
	if !m.enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: m.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return response.InternalServerError(c)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Warn("Rate limit exceeded", slog.String("client", identifier))

			return response.TooManyRequests(c)
		},
	})
}
