// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"identity/config"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argon2SaltLen = 16
	argon2KeyLen  = 32
	argon2Prefix  = "$argon2id$"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// ErrInvalidHash is returned when a stored hash cannot be parsed.
var ErrInvalidHash = errors.New("invalid password hash")

// Argon2Params are the argon2id work factors.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// argon2Hasher hashes with argon2id in PHC string format and still verifies
// bcrypt hashes written by earlier deployments.
type argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher returns an argon2id PasswordHasher with the given work factors.
func NewArgon2Hasher(params Argon2Params) service.PasswordHasher {
	return &argon2Hasher{params: params}
}

// NewPasswordHasher builds the process hasher from config: argon2id behind a bounded worker pool.
func NewPasswordHasher(cfg *config.Config) service.PasswordHasher {
	hasher := NewArgon2Hasher(Argon2Params{
		Time:      cfg.Auth.Argon2.Time,
		MemoryKiB: cfg.Auth.Argon2.MemoryKiB,
		Threads:   cfg.Auth.Argon2.Threads,
	})

	return NewPooledHasher(hasher, cfg.Auth.HashWorkers)
}

// Hash produces an argon2id hash of the password.
// Format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func (h *argon2Hasher) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, argon2KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks the password against an argon2id or bcrypt hash.
func (h *argon2Hasher) Verify(ctx context.Context, password, encodedHash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.WithStack(err)
	}

	if isBcryptHash(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, errors.Wrap(ErrInvalidHash, err.Error())
		}

		return true, nil
	}

	params, salt, expected, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.Time, params.MemoryKiB, params.Threads, uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// NeedsRehash is true for bcrypt hashes and for argon2id hashes with other work factors.
func (h *argon2Hasher) NeedsRehash(encodedHash string) bool {
	if !strings.HasPrefix(encodedHash, argon2Prefix) {
		return true
	}

	params, _, _, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return true
	}

	return params != h.params
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func decodeArgon2Hash(encodedHash string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, errors.Wrap(ErrInvalidHash, "unsupported hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, errors.Wrap(ErrInvalidHash, "unsupported argon2 version")
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return params, nil, nil, errors.Wrap(ErrInvalidHash, "malformed parameters")
	}
	if threads == 0 || threads > 255 || time == 0 || memory == 0 {
		return params, nil, nil, errors.Wrap(ErrInvalidHash, "parameters out of range")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, errors.Wrap(ErrInvalidHash, "malformed salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > 1024 {
		return params, nil, nil, errors.Wrap(ErrInvalidHash, "malformed key")
	}

	params = Argon2Params{Time: time, MemoryKiB: memory, Threads: uint8(threads)}

	return params, salt, key, nil
}
