package service

import (
	"time"

	"identity/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of a session token.
type Claims struct {
	UserID   uuid.UUID   `json:"userId"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	// Issue signs a token for the user that expires after the configured TTL.
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)

	// Verify checks signature and expiry and returns the embedded claims.
	Verify(token string) (*Claims, error)
}
