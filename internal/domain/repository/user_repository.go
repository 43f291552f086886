// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ProfileUpdate is a sparse set of column changes. A nil field is left untouched;
// a non-nil field is written, including empty values.
type ProfileUpdate struct {
	Firstname    *string
	Lastname     *string
	Bio          *string
	Title        *string
	Experience   *int
	SocialLinks  *entity.SocialLinks
	ProfileImage *string
}

// IsEmpty reports whether the update carries no changes.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Firstname == nil && u.Lastname == nil && u.Bio == nil && u.Title == nil &&
		u.Experience == nil && u.SocialLinks == nil && u.ProfileImage == nil
}

// UserRepository is the credential store. Uniqueness of username and email is
// enforced by the storage engine, so Create is safe under concurrent signups.
type UserRepository interface {
	// FindByIdentifier matches on username OR email; empty arguments are ignored.
	// The returned user carries its password hash.
	FindByIdentifier(ctx context.Context, username, email string) (*entity.User, error)

	// FindByID returns the user without its password hash.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindProfileByID returns the user without its password hash, with course relations resolved.
	FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindCredentialByID returns the user including its password hash.
	FindCredentialByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// LockByID takes a row lock on the user for the rest of the enclosing transaction.
	LockByID(ctx context.Context, id uuid.UUID) error

	// Create inserts a new user. A uniqueness collision returns ErrUsernameTaken or
	// ErrEmailTaken, with username reported first when both collide.
	Create(ctx context.Context, user *entity.User) error

	// UpdateProfile applies the non-nil fields of the update.
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) error

	// UpdatePasswordHash replaces the stored hash.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}
