package auth

import (
	"context"

	"identity/internal/domain/service"
	"identity/internal/errors"

	"golang.org/x/sync/semaphore"
)

// pooledHasher bounds how many hash computations run at once. Callers beyond
// the limit wait for a slot or give up when their context ends.
type pooledHasher struct {
	next service.PasswordHasher
	sem  *semaphore.Weighted
}

// NewPooledHasher wraps a hasher so at most workers operations run concurrently.
func NewPooledHasher(next service.PasswordHasher, workers int) service.PasswordHasher {
	if workers < 1 {
		workers = 1
	}

	return &pooledHasher{
		next: next,
		sem:  semaphore.NewWeighted(int64(workers)),
	}
}

func (p *pooledHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "waiting for hash worker")
	}
	defer p.sem.Release(1)

	return p.next.Hash(ctx, password)
}

func (p *pooledHasher) Verify(ctx context.Context, password, hash string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, errors.Wrap(err, "waiting for hash worker")
	}
	defer p.sem.Release(1)

	return p.next.Verify(ctx, password, hash)
}

func (p *pooledHasher) NeedsRehash(hash string) bool {
	return p.next.NeedsRehash(hash)
}
