// Package cache provides a time-bounded store for remote responses that are
// expensive to fetch and rarely change. It is a performance optimization
// only: a failed refresh propagates its error rather than serving stale data.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Store is a keyed TTL cache shared across caller contexts. Entries carry
// their own time-to-live; an expired entry is indistinguishable from a
// missing one.
type Store struct {
	entries *gocache.Cache
	enabled bool
}

// New creates a Store. cleanupInterval controls how often expired entries
// are evicted from memory; expiry itself is enforced on read regardless.
func New(enabled bool, cleanupInterval time.Duration) *Store {
	if cleanupInterval == 0 {
		cleanupInterval = time.Minute
	}

	return &Store{
		entries: gocache.New(gocache.NoExpiration, cleanupInterval),
		enabled: enabled,
	}
}

// Enabled reports whether the store serves and records entries.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Clear removes every entry. Explicit operator action, used for debugging
// and testing, not in normal operation.
func (s *Store) Clear() {
	s.entries.Flush()
	logrus.Info("Response cache cleared")
}

// GetOrFetch returns the cached value for key when it is fresher than ttl,
// without any network call. On a miss or expiry it calls fetch, stores the
// result on success, and returns it. When fetch fails, the error propagates
// and any previous entry is left untouched for a future successful refresh,
// never served as a stale substitute. The second return value reports
// whether the value came from cache.
func GetOrFetch[T any](s *Store, key string, ttl time.Duration, fetch func() (T, error)) (T, bool, error) {
	if s.Enabled() {
		if raw, ok := s.entries.Get(key); ok {
			if value, ok := raw.(T); ok {
				logrus.WithField("key", key).Debug("Cache hit")
				return value, true, nil
			}
			// A type mismatch means the key is being reused across
			// shapes; drop the entry and refetch.
			s.entries.Delete(key)
		}
		logrus.WithField("key", key).Debug("Cache miss")
	}

	value, err := fetch()
	if err != nil {
		var zero T
		return zero, false, err
	}

	if s.Enabled() {
		s.entries.Set(key, value, ttl)
	}

	return value, false, nil
}
