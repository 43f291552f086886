package auth

import (
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return NewJWTServiceWithClock(cfg.SecretKey.Access, cfg.Auth.TokenTTL, time.Now)
}

// NewJWTServiceWithClock builds a token service with an explicit clock.
func NewJWTServiceWithClock(secret string, ttl time.Duration, now func() time.Time) (service.TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}, nil
}

// Issue creates a signed token carrying the user's identity claims.
func (s *jwtService) Issue(user *entity.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := ceilSecond(issuedAt.Add(s.ttl))

	claims := &service.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

// ceilSecond rounds t up to the whole second carried by a JWT NumericDate, so a
// token is never considered expired before its full lifetime has passed.
func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Before(t) {
		return truncated.Add(time.Second)
	}

	return truncated
}

// Verify parses the token, checks its HMAC signature and rejects it once expired.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.New("token carries no user id")
	}

	return claims, nil
}
