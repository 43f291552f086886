package impl

import (
	"context"
	"strings"
	"testing"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	mockRepo "identity/internal/mocks/repository"
	mockService "identity/internal/mocks/service"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
	txRepo    *mockRepo.MockUserRepository
	hasher    *mockService.MockPasswordHasher
	images    *mockService.MockImageStorage
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	txRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	images := mockService.NewMockImageStorage(t)

	srv := NewProfileService(ProfileServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Hasher:    hasher,
		Images:    images,
		Logger:    newDiscardLogger(),
	})

	return profileServiceFixtures{
		service:   srv,
		txManager: txManager,
		userRepo:  userRepo,
		txRepo:    txRepo,
		hasher:    hasher,
		images:    images,
	}
}

// expectTx runs the transaction callback against txRepo and returns its error.
func (fx profileServiceFixtures) expectTx(t *testing.T, ctx context.Context) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().UserRepo().Return(fx.txRepo)

			return fn(factory)
		})
}

func identityFor(user *entity.User) *usecase.Identity {
	return &usecase.Identity{UserID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role}
}

func TestProfileService_GetProfile(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()
	stored.PasswordHash = ""
	stored.EnrolledCourses = []entity.CourseSummary{{ID: uuid.New(), Title: "Go", Progress: 40}}

	fx.userRepo.EXPECT().FindProfileByID(ctx, stored.ID).Return(stored, nil)

	user, err := fx.service.GetProfile(ctx, identityFor(stored))

	require.NoError(t, err)
	assert.Equal(t, "ada123", user.Username)
	assert.Len(t, user.EnrolledCourses, 1)
}

func TestProfileService_GetProfile_Vanished(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.userRepo.EXPECT().FindProfileByID(ctx, id).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetProfile(ctx, &usecase.Identity{UserID: id})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile_WithImage(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()
	bio := ""
	upload := &service.ImageUpload{Filename: "me.png", Content: strings.NewReader("png")}

	fx.images.EXPECT().SaveProfileImage(ctx, stored.ID, upload).Return("/uploads/profile-images/me.png", nil)
	fx.expectTx(t, ctx)
	fx.txRepo.EXPECT().LockByID(ctx, stored.ID).Return(nil)
	fx.txRepo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
	fx.txRepo.EXPECT().UpdateProfile(ctx, stored.ID, mock.AnythingOfType("repository.ProfileUpdate")).
		Run(func(_ context.Context, _ uuid.UUID, update repository.ProfileUpdate) {
			require.NotNil(t, update.Bio)
			assert.Empty(t, *update.Bio, "empty bio clears the field")
			require.NotNil(t, update.ProfileImage)
			assert.Equal(t, "/uploads/profile-images/me.png", *update.ProfileImage)
			assert.Nil(t, update.Firstname)
		}).
		Return(nil)
	fx.txRepo.EXPECT().FindProfileByID(ctx, stored.ID).Return(stored, nil)

	user, err := fx.service.UpdateProfile(ctx, identityFor(stored), &usecase.ProfilePatch{Bio: &bio, ImageUpload: upload})

	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestProfileService_UpdateProfile_ReplacedImageIsRemoved(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()
	stored.ProfileImage = "/uploads/profile-images/old.png"
	upload := &service.ImageUpload{Filename: "me.png", Content: strings.NewReader("png")}

	fx.images.EXPECT().SaveProfileImage(ctx, stored.ID, upload).Return("/uploads/profile-images/new.png", nil)
	fx.expectTx(t, ctx)
	fx.txRepo.EXPECT().LockByID(ctx, stored.ID).Return(nil)
	fx.txRepo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
	fx.txRepo.EXPECT().UpdateProfile(ctx, stored.ID, mock.AnythingOfType("repository.ProfileUpdate")).Return(nil)
	fx.txRepo.EXPECT().FindProfileByID(ctx, stored.ID).Return(stored, nil)
	fx.images.EXPECT().DeleteProfileImage(mock.Anything, "/uploads/profile-images/old.png").Return(nil).Once()

	_, err := fx.service.UpdateProfile(ctx, identityFor(stored), &usecase.ProfilePatch{ImageUpload: upload})

	require.NoError(t, err)
	fx.images.AssertNotCalled(t, "DeleteProfileImage", mock.Anything, "/uploads/profile-images/new.png")
}

func TestProfileService_UpdateProfile_FailedUpdateRemovesNewImage(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()
	upload := &service.ImageUpload{Filename: "me.png", Content: strings.NewReader("png")}

	fx.images.EXPECT().SaveProfileImage(ctx, stored.ID, upload).Return("/uploads/profile-images/new.png", nil)
	fx.expectTx(t, ctx)
	fx.txRepo.EXPECT().LockByID(ctx, stored.ID).Return(repository.ErrUserNotFound)
	fx.images.EXPECT().DeleteProfileImage(mock.Anything, "/uploads/profile-images/new.png").
		Return(domainerrors.ErrStorageFailed).Once()

	_, err := fx.service.UpdateProfile(ctx, identityFor(stored), &usecase.ProfilePatch{ImageUpload: upload})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	fx.txRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfile_WithoutImageLeavesStorageAlone(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()
	stored.ProfileImage = "/uploads/profile-images/old.png"
	title := "Analyst"

	fx.expectTx(t, ctx)
	fx.txRepo.EXPECT().LockByID(ctx, stored.ID).Return(nil)
	fx.txRepo.EXPECT().UpdateProfile(ctx, stored.ID, mock.AnythingOfType("repository.ProfileUpdate")).Return(nil)
	fx.txRepo.EXPECT().FindProfileByID(ctx, stored.ID).Return(stored, nil)

	_, err := fx.service.UpdateProfile(ctx, identityFor(stored), &usecase.ProfilePatch{Title: &title})

	require.NoError(t, err)
	fx.txRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	fx.images.AssertNotCalled(t, "DeleteProfileImage", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfile_RejectedImageStopsUpdate(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()
	upload := &service.ImageUpload{Filename: "notes.txt", Content: strings.NewReader("text")}

	fx.images.EXPECT().SaveProfileImage(ctx, stored.ID, upload).Return("", domainerrors.ErrNotAnImage)

	_, err := fx.service.UpdateProfile(ctx, identityFor(stored), &usecase.ProfilePatch{ImageUpload: upload})

	assert.ErrorIs(t, err, domainerrors.ErrNotAnImage)
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestProfileService_UpdatePassword_Success(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()

	fx.userRepo.EXPECT().FindCredentialByID(ctx, stored.ID).Return(stored, nil)
	fx.hasher.EXPECT().Verify(ctx, "oldpassword1", stored.PasswordHash).Return(true, nil)
	fx.hasher.EXPECT().Hash(ctx, "newpassword2").Return("$argon2id$new", nil)
	fx.expectTx(t, ctx)
	fx.txRepo.EXPECT().LockByID(ctx, stored.ID).Return(nil)
	fx.txRepo.EXPECT().FindCredentialByID(ctx, stored.ID).Return(stored, nil)
	fx.txRepo.EXPECT().UpdatePasswordHash(ctx, stored.ID, "$argon2id$new").Return(nil)

	err := fx.service.UpdatePassword(ctx, identityFor(stored), &usecase.PasswordUpdateInput{
		CurrentPassword: "oldpassword1",
		NewPassword:     "newpassword2",
		ConfirmPassword: "newpassword2",
	})

	require.NoError(t, err)
}

func TestProfileService_UpdatePassword_WrongCurrentPersistsNothing(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()

	fx.userRepo.EXPECT().FindCredentialByID(ctx, stored.ID).Return(stored, nil)
	fx.hasher.EXPECT().Verify(ctx, "notmypassword1", stored.PasswordHash).Return(false, nil)

	err := fx.service.UpdatePassword(ctx, identityFor(stored), &usecase.PasswordUpdateInput{
		CurrentPassword: "notmypassword1",
		NewPassword:     "newpassword2",
		ConfirmPassword: "newpassword2",
	})

	assert.ErrorIs(t, err, domainerrors.ErrCurrentPasswordIncorrect)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestProfileService_UpdatePassword_MismatchChecksFirst(t *testing.T) {
	fx := createTestProfileService(t)

	err := fx.service.UpdatePassword(context.Background(), &usecase.Identity{UserID: uuid.New()}, &usecase.PasswordUpdateInput{
		CurrentPassword: "oldpassword1",
		NewPassword:     "newpassword2",
		ConfirmPassword: "newpassword3",
	})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
}

func TestProfileService_UpdatePassword_ConcurrentChange(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	stored := newStoredUser()
	changed := *stored
	changed.PasswordHash = "$argon2id$changed"

	fx.userRepo.EXPECT().FindCredentialByID(ctx, stored.ID).Return(stored, nil)
	fx.hasher.EXPECT().Verify(ctx, "oldpassword1", stored.PasswordHash).Return(true, nil)
	fx.hasher.EXPECT().Hash(ctx, "newpassword2").Return("$argon2id$new", nil)
	fx.expectTx(t, ctx)
	fx.txRepo.EXPECT().LockByID(ctx, stored.ID).Return(nil)
	fx.txRepo.EXPECT().FindCredentialByID(ctx, stored.ID).Return(&changed, nil)

	err := fx.service.UpdatePassword(ctx, identityFor(stored), &usecase.PasswordUpdateInput{
		CurrentPassword: "oldpassword1",
		NewPassword:     "newpassword2",
		ConfirmPassword: "newpassword2",
	})

	assert.ErrorIs(t, err, domainerrors.ErrCurrentPasswordIncorrect)
	fx.txRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}
