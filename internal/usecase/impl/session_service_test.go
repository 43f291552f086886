package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/errors"
	mockRepo "identity/internal/mocks/repository"
	mockService "identity/internal/mocks/service"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionServiceFixtures struct {
	service  usecase.SessionUsecase
	userRepo *mockRepo.MockUserRepository
	tokens   *mockService.MockTokenService
	recorder *mockService.MockAuthRecorder
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	tokens := mockService.NewMockTokenService(t)
	recorder := mockService.NewMockAuthRecorder(t)

	srv := NewSessionService(SessionServiceParams{
		UserRepo:     userRepo,
		TokenService: tokens,
		Recorder:     recorder,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})

	return sessionServiceFixtures{service: srv, userRepo: userRepo, tokens: tokens, recorder: recorder}
}

func TestSessionService_Authenticate_Success(t *testing.T) {
	fx := createTestSessionService(t)
	ctx := context.Background()
	stored := newStoredUser()
	stored.PasswordHash = ""

	fx.tokens.EXPECT().Verify("good").Return(&service.Claims{UserID: stored.ID}, nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, stored.ID).
		Run(func(ctx context.Context, _ uuid.UUID) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok, "lookup is bounded")
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
		}).
		Return(stored, nil)

	identity, err := fx.service.Authenticate(ctx, "good")

	require.NoError(t, err)
	assert.Equal(t, stored.ID, identity.UserID)
	assert.Equal(t, "ada123", identity.Username)
}

func TestSessionService_Authenticate_Rejections(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		token  string
		setup  func(fx sessionServiceFixtures)
		reason string
		want   error
	}{
		{
			name:   "missing token",
			token:  "",
			setup:  func(sessionServiceFixtures) {},
			reason: rejectMissing,
			want:   domainerrors.ErrTokenMissing,
		},
		{
			name:  "invalid token",
			token: "tampered",
			setup: func(fx sessionServiceFixtures) {
				fx.tokens.EXPECT().Verify("tampered").Return(nil, errors.New("signature is invalid"))
			},
			reason: rejectInvalid,
			want:   domainerrors.ErrTokenInvalid,
		},
		{
			name:  "user deleted",
			token: "orphan",
			setup: func(fx sessionServiceFixtures) {
				fx.tokens.EXPECT().Verify("orphan").Return(&service.Claims{UserID: userID}, nil)
				fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound)
			},
			reason: rejectUserNotFound,
			want:   domainerrors.ErrTokenUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestSessionService(t)
			tt.setup(fx)
			fx.recorder.EXPECT().RecordGateRejection(tt.reason).Return()

			_, err := fx.service.Authenticate(context.Background(), tt.token)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSessionService_Authenticate_LookupFailure(t *testing.T) {
	fx := createTestSessionService(t)
	userID := uuid.New()

	fx.tokens.EXPECT().Verify("good").Return(&service.Claims{UserID: userID}, nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, context.DeadlineExceeded)
	fx.recorder.EXPECT().RecordGateRejection(rejectLookupFailed).Return()

	_, err := fx.service.Authenticate(context.Background(), "good")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, domainerrors.ErrTokenUserNotFound)
}
