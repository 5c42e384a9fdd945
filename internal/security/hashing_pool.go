package security

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// HashPool bounds the number of bcrypt operations running at once so that a burst of logins
// cannot starve other request handling of CPU. Waiting for a slot honours ctx.
type HashPool struct {
	hasher *Hasher
	sem    *semaphore.Weighted
}

// NewHashPool returns a HashPool running at most size concurrent operations on hasher.
// size <= 0 selects runtime.NumCPU().
func NewHashPool(hasher *Hasher, size int) *HashPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &HashPool{hasher: hasher, sem: semaphore.NewWeighted(int64(size))}
}

// Hash hashes password once a slot is free. Returns ctx.Err() if ctx ends first.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)
	return p.hasher.Hash(password)
}

// Verify compares password with digest once a slot is free. A cancelled ctx counts as a mismatch.
func (p *HashPool) Verify(ctx context.Context, digest, password string) bool {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer p.sem.Release(1)
	return p.hasher.Verify(digest, password)
}
