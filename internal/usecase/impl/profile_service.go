package impl

import (
	"context"
	"log/slog"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	images    service.ImageStorage
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Images    service.ImageStorage
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		images:    params.Images,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the caller's profile with course relations resolved.
func (srv *profileService) GetProfile(ctx context.Context, identity *usecase.Identity) (*entity.User, error) {
	user, err := srv.userRepo.FindProfileByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user profile")
	}

	return usecase.Sanitize(user), nil
}

// UpdateProfile stores any uploaded image, then applies the patch under a
// row lock and returns the refreshed profile. A new image is removed again if
// the update fails; the image it replaces is removed once the update commits.
func (srv *profileService) UpdateProfile(ctx context.Context, identity *usecase.Identity, patch *usecase.ProfilePatch) (*entity.User, error) {
	update := repository.ProfileUpdate{
		Firstname:    patch.Firstname,
		Lastname:     patch.Lastname,
		Bio:          patch.Bio,
		Title:        patch.Title,
		Experience:   patch.Experience,
		SocialLinks:  patch.SocialLinks,
		ProfileImage: patch.ProfileImage,
	}

	var uploaded string
	if patch.ImageUpload != nil {
		ref, err := srv.images.SaveProfileImage(ctx, identity.UserID, patch.ImageUpload)
		if err != nil {
			return nil, err
		}
		uploaded = ref
		update.ProfileImage = &ref
	}

	var (
		user     *entity.User
		previous string
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := userRepo.LockByID(ctx, identity.UserID); err != nil {
			return err
		}
		if update.ProfileImage != nil {
			current, err := userRepo.FindByID(ctx, identity.UserID)
			if err != nil {
				return err
			}
			previous = current.ProfileImage
		}
		if err := userRepo.UpdateProfile(ctx, identity.UserID, update); err != nil {
			return err
		}

		updated, err := userRepo.FindProfileByID(ctx, identity.UserID)
		if err != nil {
			return err
		}
		user = updated

		return nil
	})
	if err != nil {
		if uploaded != "" {
			srv.removeImage(ctx, identity, uploaded)
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to update profile")
	}

	if previous != "" && previous != *update.ProfileImage {
		srv.removeImage(ctx, identity, previous)
	}

	srv.log(ctx).Info("Profile updated", slog.String("user_id", identity.UserID.String()))

	return usecase.Sanitize(user), nil
}

// removeImage deletes a stored image on a best-effort basis.
func (srv *profileService) removeImage(ctx context.Context, identity *usecase.Identity, ref string) {
	if err := srv.images.DeleteProfileImage(context.WithoutCancel(ctx), ref); err != nil {
		srv.log(ctx).Warn("Failed to remove profile image",
			slog.String("user_id", identity.UserID.String()),
			slog.String("image", ref),
			slog.Any("error", err),
		)
	}
}

// UpdatePassword replaces the credential after verifying the current password.
// Nothing is written unless the confirmation matches and the current password verifies.
func (srv *profileService) UpdatePassword(ctx context.Context, identity *usecase.Identity, input *usecase.PasswordUpdateInput) error {
	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch
	}

	current, err := srv.userRepo.FindCredentialByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to find user credential")
	}

	ok, err := srv.hasher.Verify(ctx, input.CurrentPassword, current.PasswordHash)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}
	if !ok {
		srv.log(ctx).Info("Password change rejected", slog.String("user_id", identity.UserID.String()))

		return domainerrors.ErrCurrentPasswordIncorrect
	}

	newHash, err := srv.hasher.Hash(ctx, input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := userRepo.LockByID(ctx, identity.UserID); err != nil {
			return err
		}

		// A concurrent change since verification invalidates the current password.
		locked, err := userRepo.FindCredentialByID(ctx, identity.UserID)
		if err != nil {
			return err
		}
		if locked.PasswordHash != current.PasswordHash {
			return domainerrors.ErrCurrentPasswordIncorrect
		}

		return userRepo.UpdatePasswordHash(ctx, identity.UserID, newHash)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return domainerrors.ErrUserNotFound
		case errors.Is(err, domainerrors.ErrCurrentPasswordIncorrect):
			return err
		}

		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password updated", slog.String("user_id", identity.UserID.String()))

	return nil
}
