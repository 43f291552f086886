// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// timingPassword is hashed once and verified against when signin finds no
// account, so both failure paths cost one verification.
const timingPassword = "timing-equalization-0"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	recorder     service.AuthRecorder
	logger       *slog.Logger

	dummyMu   sync.Mutex
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Recorder     service.AuthRecorder
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		recorder:     params.Recorder,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates an account. The early identifier lookup gives a precise
// conflict message; the store's unique indexes decide concurrent races.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Debug("Starting signup", slog.String("username", input.Username))

	existing, err := srv.userRepo.FindByIdentifier(ctx, input.Username, input.Email)
	switch {
	case err == nil:
		srv.recorder.RecordSignup(service.OutcomeConflict)
		if existing.Username == input.Username {
			return nil, domainerrors.ErrUsernameTaken
		}

		return nil, domainerrors.ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		srv.recorder.RecordSignup(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to check identifier uniqueness")
	}

	hash, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.recorder.RecordSignup(service.OutcomeError)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user, err := buildNewUser(input, hash)
	if err != nil {
		srv.recorder.RecordSignup(service.OutcomeError)

		return nil, err
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrUsernameTaken) || errors.Is(err, domainerrors.ErrEmailTaken) {
			srv.recorder.RecordSignup(service.OutcomeConflict)

			return nil, err
		}
		srv.recorder.RecordSignup(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.recorder.RecordSignup(service.OutcomeSuccess)
	srv.log(ctx).Info("User signed up", slog.String("user_id", user.ID.String()), slog.String("role", user.Role.String()))

	return &usecase.SignupOutput{User: usecase.Sanitize(user)}, nil
}

func buildNewUser(input *usecase.SignupInput, hash string) (*entity.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate user id")
	}

	role := input.Role
	if role == "" {
		role = entity.RoleStudent
	}

	user := &entity.User{
		ID:           id,
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Bio:          input.Bio,
		Title:        input.Title,
		ProfileImage: input.ProfileImage,
		SocialLinks:  entity.SocialLinks{},
	}
	// Zero experience is "not supplied" at signup.
	if input.Experience != nil && *input.Experience != 0 {
		experience := *input.Experience
		user.Experience = &experience
	}
	if len(input.SocialLinks) > 0 {
		user.SocialLinks = input.SocialLinks
	}

	return user, nil
}

// Signin verifies the credential and issues a session token. Unknown
// identifiers and wrong passwords fail identically.
func (srv *authService) Signin(ctx context.Context, input *usecase.SigninInput) (*usecase.SigninOutput, error) {
	user, err := srv.userRepo.FindByIdentifier(ctx, input.Username, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.equalizeTiming(ctx, input.Password)
			srv.recorder.RecordSignin(service.OutcomeUnauthorized)

			return nil, domainerrors.ErrInvalidCredentials
		}
		srv.recorder.RecordSignin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to find user")
	}

	ok, err := srv.hasher.Verify(ctx, input.Password, user.PasswordHash)
	if err != nil {
		srv.recorder.RecordSignin(service.OutcomeError)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}
	if !ok {
		srv.recorder.RecordSignin(service.OutcomeUnauthorized)
		srv.log(ctx).Info("Signin rejected", slog.String("user_id", user.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if srv.hasher.NeedsRehash(user.PasswordHash) {
		srv.upgradeHash(ctx, user.ID, input.Password)
	}

	token, expiresAt, err := srv.tokenService.Issue(user)
	if err != nil {
		srv.recorder.RecordSignin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.recorder.RecordSignin(service.OutcomeSuccess)
	srv.log(ctx).Info("User signed in", slog.String("user_id", user.ID.String()))

	return &usecase.SigninOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      usecase.Sanitize(user),
	}, nil
}

// upgradeHash re-hashes a legacy credential. Failure leaves the old hash in place.
func (srv *authService) upgradeHash(ctx context.Context, userID uuid.UUID, password string) {
	hash, err := srv.hasher.Hash(ctx, password)
	if err != nil {
		srv.log(ctx).Warn("Failed to rehash password", slog.String("user_id", userID.String()), slog.Any("error", err))

		return
	}

	if err := srv.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		srv.log(ctx).Warn("Failed to store upgraded password hash", slog.String("user_id", userID.String()), slog.Any("error", err))

		return
	}

	srv.log(ctx).Info("Upgraded password hash", slog.String("user_id", userID.String()))
}

func (srv *authService) equalizeTiming(ctx context.Context, password string) {
	if hash := srv.timingHash(ctx); hash != "" {
		_, _ = srv.hasher.Verify(ctx, password, hash)
	}
}

// timingHash returns the dummy hash, preparing it on first use. A failed
// attempt is retried by the next caller.
func (srv *authService) timingHash(ctx context.Context) string {
	srv.dummyMu.Lock()
	defer srv.dummyMu.Unlock()

	if srv.dummyHash != "" {
		return srv.dummyHash
	}

	// Detached so one caller hanging up does not fail the shared hash.
	hash, err := srv.hasher.Hash(context.WithoutCancel(ctx), timingPassword)
	if err != nil {
		srv.log(ctx).Warn("Failed to prepare timing hash", slog.Any("error", err))

		return ""
	}
	srv.dummyHash = hash

	return hash
}
