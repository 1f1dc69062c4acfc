package usecase

import (
	"context"
	"time"
)

// DictionaryCache caches the shared reference dictionaries between matching
// requests. A miss or a cache error falls through to the repository.
type DictionaryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}
