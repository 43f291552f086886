package impl

import (
	"context"
	"log/slog"
	"time"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"go.uber.org/fx"
)

// Gate rejection reasons.
const (
	rejectMissing      = "missing"
	rejectInvalid      = "invalid"
	rejectUserNotFound = "user_not_found"
	rejectLookupFailed = "lookup_failed"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	userRepo      repository.UserRepository
	tokenService  service.TokenService
	recorder      service.AuthRecorder
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Recorder     service.AuthRecorder
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		userRepo:      params.UserRepo,
		tokenService:  params.TokenService,
		recorder:      params.Recorder,
		lookupTimeout: params.Config.Auth.LookupTimeout,
		logger:        params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate runs the gate: token present, signature and expiry valid,
// user still exists. Each failure is a 401 with its own message.
func (srv *sessionService) Authenticate(ctx context.Context, token string) (*usecase.Identity, error) {
	if token == "" {
		srv.recorder.RecordGateRejection(rejectMissing)

		return nil, domainerrors.ErrTokenMissing
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.recorder.RecordGateRejection(rejectInvalid)
		srv.log(ctx).Debug("Rejected session token", slog.Any("error", err))

		return nil, domainerrors.ErrTokenInvalid
	}

	lookupCtx := ctx
	if srv.lookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, srv.lookupTimeout)
		defer cancel()
	}

	user, err := srv.userRepo.FindByID(lookupCtx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.recorder.RecordGateRejection(rejectUserNotFound)

			return nil, domainerrors.ErrTokenUserNotFound
		}
		srv.recorder.RecordGateRejection(rejectLookupFailed)

		return nil, errors.Wrap(err, "failed to resolve session user")
	}

	return &usecase.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}
