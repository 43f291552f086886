package usecase

import (
	"context"

	"identity/internal/domain/entity"
	"identity/internal/domain/service"
)

// ProfilePatch is a sparse profile update. Nil fields are left untouched;
// an empty value clears an optional field.
type ProfilePatch struct {
	Firstname    *string
	Lastname     *string
	Bio          *string
	Title        *string
	Experience   *int
	SocialLinks  *entity.SocialLinks
	ProfileImage *string

	// ImageUpload replaces the profile image and wins over ProfileImage.
	ImageUpload *service.ImageUpload
}

// PasswordUpdateInput carries the password change request.
type PasswordUpdateInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ProfileUsecase covers the flows that require an authenticated identity.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, identity *Identity) (*entity.User, error)
	UpdateProfile(ctx context.Context, identity *Identity, patch *ProfilePatch) (*entity.User, error)
	UpdatePassword(ctx context.Context, identity *Identity, input *PasswordUpdateInput) error
}
