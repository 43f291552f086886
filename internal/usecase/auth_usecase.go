// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput carries a validated, normalized signup payload.
// Zero-valued optional fields are not stored.
type SignupInput struct {
	Firstname    string
	Lastname     string
	Username     string
	Email        string
	Password     string
	Role         entity.Role
	Bio          string
	Title        string
	Experience   *int
	SocialLinks  entity.SocialLinks
	ProfileImage string
}

// SigninInput identifies the account by username or email.
type SigninInput struct {
	Username string
	Email    string
	Password string
}

// --- Output DTOs ---

// SignupOutput returns the created user without its credential.
type SignupOutput struct {
	User *entity.User
}

// SigninOutput returns the session token and the signed-in user.
type SigninOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// AuthUsecase covers the unauthenticated account flows.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
	Signin(ctx context.Context, input *SigninInput) (*SigninOutput, error)
}

// Sanitize returns a copy of the user with its password hash removed.
func Sanitize(user *entity.User) *entity.User {
	if user == nil {
		return nil
	}

	clean := *user
	clean.PasswordHash = ""

	return &clean
}
