//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	"identity/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("identity_test"),
		tcpostgres.WithUsername("identity"),
		tcpostgres.WithPassword("identity"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, postgres.MigrateUp(ctx, sqlDB))

	return db
}

func newCandidate(username, email string) *entity.User {
	return &entity.User{
		ID:           uuid.Must(uuid.NewV7()),
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		Role:         entity.RoleStudent,
	}
}

func TestUserRepository_Integration(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("concurrent signups on one username admit exactly one", func(t *testing.T) {
		const attempts = 8

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			conflicts int
		)
		for i := range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()

				err := repo.Create(ctx, newCandidate("racer", fmt.Sprintf("racer%d@x.com", i)))

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, domainerrors.ErrUsernameTaken):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, attempts-1, conflicts)
	})

	t.Run("distinct signups all succeed", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = repo.Create(ctx, newCandidate(fmt.Sprintf("solo%d", i), fmt.Sprintf("solo%d@x.com", i)))
			}()
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
	})

	t.Run("username wins when both identifiers collide", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newCandidate("babbage", "charles@x.com")))

		err := repo.Create(ctx, newCandidate("babbage", "charles@x.com"))
		assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken), "got %v", err)

		err = repo.Create(ctx, newCandidate("charles", "charles@x.com"))
		assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken), "got %v", err)
	})

	t.Run("lookups hide or expose the hash as documented", func(t *testing.T) {
		user := newCandidate("hopper", "grace@x.com")
		require.NoError(t, repo.Create(ctx, user))

		byID, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, byID.PasswordHash)
		assert.Equal(t, "hopper", byID.Username)

		credential, err := repo.FindCredentialByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.PasswordHash, credential.PasswordHash)

		byEmail, err := repo.FindByIdentifier(ctx, "", "grace@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("profile update writes only present fields", func(t *testing.T) {
		user := newCandidate("turing", "alan@x.com")
		user.Bio = "Codebreaker"
		user.Title = "Mathematician"
		require.NoError(t, repo.Create(ctx, user))

		bio := ""
		experience := 0
		links := entity.SocialLinks{entity.SocialGitHub: "https://github.com/turing"}
		require.NoError(t, repo.UpdateProfile(ctx, user.ID, repository.ProfileUpdate{
			Bio:         &bio,
			Experience:  &experience,
			SocialLinks: &links,
		}))

		profile, err := repo.FindProfileByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, profile.Bio)
		assert.Equal(t, "Mathematician", profile.Title)
		require.NotNil(t, profile.Experience)
		assert.Equal(t, 0, *profile.Experience)
		assert.Equal(t, links, profile.SocialLinks)
		assert.Empty(t, profile.EnrolledCourses)
		assert.Empty(t, profile.PasswordHash)
	})

	t.Run("password hash changes under a row lock", func(t *testing.T) {
		user := newCandidate("lamarr", "hedy@x.com")
		require.NoError(t, repo.Create(ctx, user))

		tm := postgres.NewTransactionManager(db)
		err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			if err := f.UserRepo().LockByID(ctx, user.ID); err != nil {
				return err
			}

			return f.UserRepo().UpdatePasswordHash(ctx, user.ID, "$argon2id$rotated")
		})
		require.NoError(t, err)

		credential, err := repo.FindCredentialByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "$argon2id$rotated", credential.PasswordHash)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		user := newCandidate("noether", "emmy@x.com")
		require.NoError(t, repo.Create(ctx, user))

		tm := postgres.NewTransactionManager(db)
		sentinel := errors.New("abort")
		err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			if err := f.UserRepo().UpdatePasswordHash(ctx, user.ID, "$argon2id$discarded"); err != nil {
				return err
			}

			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)

		credential, err := repo.FindCredentialByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.PasswordHash, credential.PasswordHash)
	})
}
