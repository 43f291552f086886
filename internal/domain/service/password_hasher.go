// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// Implementations are CPU-bound; callers pass a context so queued work can be abandoned.
type PasswordHasher interface {
	// Hash generates a salted one-way hash from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Verify compares a plaintext password with a stored hash in constant time.
	// A malformed hash is reported as an error, a mismatch as (false, nil).
	Verify(ctx context.Context, password, hash string) (bool, error)

	// NeedsRehash reports whether the hash was produced by an older scheme or parameters.
	NeedsRehash(hash string) bool
}
