package usecase

import (
	"context"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// Identity is the authenticated caller attached to a request by the session gate.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Role     entity.Role
}

// SessionUsecase resolves a bearer token to a live identity.
type SessionUsecase interface {
	// Authenticate verifies the token and confirms its user still exists.
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
