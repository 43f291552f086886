package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type blockingHasher struct {
	release chan struct{}
	active  atomic.Int32
	peak    atomic.Int32
}

func (b *blockingHasher) enter() {
	n := b.active.Add(1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}
	<-b.release
	b.active.Add(-1)
}

func (b *blockingHasher) Hash(ctx context.Context, password string) (string, error) {
	b.enter()
	return "hash:" + password, nil
}

func (b *blockingHasher) Verify(ctx context.Context, password, hash string) (bool, error) {
	b.enter()
	return hash == "hash:"+password, nil
}

func (b *blockingHasher) NeedsRehash(string) bool { return false }

func TestPooledHasher_BoundsConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	inner := &blockingHasher{release: make(chan struct{})}
	pool := NewPooledHasher(inner, 2)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := pool.Hash(context.Background(), "pw")
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return inner.active.Load() == 2 }, time.Second, 5*time.Millisecond)
	close(inner.release)
	wg.Wait()

	assert.Equal(t, int32(2), inner.peak.Load())
}

func TestPooledHasher_ContextCancelledWhileWaiting(t *testing.T) {
	defer goleak.VerifyNone(t)

	inner := &blockingHasher{release: make(chan struct{})}
	pool := NewPooledHasher(inner, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = pool.Verify(context.Background(), "pw", "hash:pw")
	}()
	require.Eventually(t, func() bool { return inner.active.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := pool.Hash(ctx, "other")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(inner.release)
	<-done
}

func TestPooledHasher_DelegatesResult(t *testing.T) {
	inner := &blockingHasher{release: make(chan struct{})}
	close(inner.release)
	pool := NewPooledHasher(inner, 0)

	hash, err := pool.Hash(context.Background(), "pw")
	require.NoError(t, err)
	assert.Equal(t, "hash:pw", hash)

	ok, err := pool.Verify(context.Background(), "pw", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}
