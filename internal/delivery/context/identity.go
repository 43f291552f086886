package context

import (
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
)

// KeyIdentity is the key for the authenticated caller in echo.Context.
const KeyIdentity ContextKey = "identity"

// SetIdentity stores the identity resolved by the session gate.
func SetIdentity(c echo.Context, identity *usecase.Identity) {
	c.Set(string(KeyIdentity), identity)
}

// GetIdentity returns the identity resolved by the session gate, if any.
func GetIdentity(c echo.Context) (*usecase.Identity, bool) {
	identity, ok := c.Get(string(KeyIdentity)).(*usecase.Identity)

	return identity, ok && identity != nil
}
