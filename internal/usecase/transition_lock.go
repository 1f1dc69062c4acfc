package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TransitionLock enforces at most one in-flight status transition per
// activity. TryLock reports false when another transition holds the lock;
// the caller rejects instead of queueing.
type TransitionLock interface {
	TryLock(ctx context.Context, activityID uuid.UUID) (bool, error)
	Unlock(ctx context.Context, activityID uuid.UUID) error
}

type setNXClient interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// RedisTransitionLock marks an in-progress transition with a SETNX key so
// the guard holds across replicas. The TTL releases locks abandoned by a
// crashed holder.
type RedisTransitionLock struct {
	client setNXClient
	ttl    time.Duration
}

func NewRedisTransitionLock(client setNXClient, ttl time.Duration) *RedisTransitionLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisTransitionLock{client: client, ttl: ttl}
}

func lockKey(activityID uuid.UUID) string {
	return "pipeline:transition:" + activityID.String()
}

func (l *RedisTransitionLock) TryLock(ctx context.Context, activityID uuid.UUID) (bool, error) {
	return l.client.SetIfNotExists(ctx, lockKey(activityID), "1", l.ttl)
}

func (l *RedisTransitionLock) Unlock(ctx context.Context, activityID uuid.UUID) error {
	return l.client.Delete(ctx, lockKey(activityID))
}

// MemoryTransitionLock is the single-process fallback used when redis is
// unreachable at startup.
type MemoryTransitionLock struct {
	mu     sync.Mutex
	locked map[uuid.UUID]struct{}
}

func NewMemoryTransitionLock() *MemoryTransitionLock {
	return &MemoryTransitionLock{locked: make(map[uuid.UUID]struct{})}
}

func (l *MemoryTransitionLock) TryLock(_ context.Context, activityID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.locked[activityID]; held {
		return false, nil
	}
	l.locked[activityID] = struct{}{}
	return true, nil
}

func (l *MemoryTransitionLock) Unlock(_ context.Context, activityID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locked, activityID)
	return nil
}
