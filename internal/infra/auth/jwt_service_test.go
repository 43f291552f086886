package auth

import (
	"strings"
	"testing"
	"time"

	"identity/config"
	"identity/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestUser() *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		Username: "janedoe",
		Email:    "jane@example.com",
		Role:     entity.RoleStudent,
	}
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := NewJWTServiceWithClock(testSecret, 24*time.Hour, clock.Now)
	require.NoError(t, err)

	user := newTestUser()
	token, expiresAt, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, clock.now.Add(24*time.Hour), expiresAt)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "janedoe", claims.Username)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, entity.RoleStudent, claims.Role)
}

func TestJWTService_ExpiryBoundary(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	svc, err := NewJWTServiceWithClock(testSecret, 24*time.Hour, clock.Now)
	require.NoError(t, err)

	token, _, err := svc.Issue(newTestUser())
	require.NoError(t, err)

	clock.now = start.Add(23*time.Hour + 59*time.Minute)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	clock.now = start.Add(24*time.Hour + time.Second)
	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiryBoundary_SubSecondIssue(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 900*int(time.Millisecond), time.UTC)
	clock := &fakeClock{now: start}
	svc, err := NewJWTServiceWithClock(testSecret, 24*time.Hour, clock.Now)
	require.NoError(t, err)

	token, expiresAt, err := svc.Issue(newTestUser())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 12, 0, 1, 0, time.UTC), expiresAt)
	assert.False(t, expiresAt.Before(start.Add(24*time.Hour)))

	clock.now = start.Add(24*time.Hour - 500*time.Millisecond)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Equal(expiresAt))

	clock.now = expiresAt
	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsTamperedAndForeignTokens(t *testing.T) {
	svc, err := NewJWTServiceWithClock(testSecret, time.Hour, time.Now)
	require.NoError(t, err)

	token, _, err := svc.Issue(newTestUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	_, err = svc.Verify(parts[0] + "." + parts[1] + "." + string(sig))
	assert.Error(t, err)

	other, err := NewJWTServiceWithClock("another_secret_of_reasonable_length", time.Hour, time.Now)
	require.NoError(t, err)
	foreign, _, err := other.Issue(newTestUser())
	require.NoError(t, err)
	_, err = svc.Verify(foreign)
	assert.Error(t, err)

	_, err = svc.Verify("not.a.token")
	assert.Error(t, err)

	// alg=none header with the original payload.
	_, err = svc.Verify("eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." + parts[1] + ".")
	assert.Error(t, err)
}

func TestNewJWTService_Config(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.TokenTTL = time.Hour

	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg.SecretKey.Access = testSecret
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
