package middleware

import (
	"strings"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
)

const bearerScheme = "bearer"

// AuthMiddleware is the session gate for protected routes.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate resolves the bearer token and attaches the caller's identity
// for the handler. Failures are returned to the error tail as 401s.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

		identity, err := m.sessions.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}

// bearerToken extracts the credential from an Authorization header. A header
// with another scheme yields its credential as-is so verification rejects it
// as invalid rather than missing.
func bearerToken(header string) string {
	scheme, credential, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		if strings.EqualFold(scheme, bearerScheme) {
			return ""
		}

		return scheme
	}
	if !strings.EqualFold(scheme, bearerScheme) {
		return strings.TrimSpace(header)
	}

	return strings.TrimSpace(credential)
}
