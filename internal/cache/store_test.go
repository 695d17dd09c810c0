package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrFetch_MissThenHit(t *testing.T) {
	store := New(true, time.Minute)

	fetches := 0
	fetch := func() (string, error) {
		fetches++
		return "value", nil
	}

	value, hit, err := GetOrFetch(store, "key", time.Hour, fetch)
	require.NoError(t, err)
	assert.False(t, hit, "first read should miss")
	assert.Equal(t, "value", value)

	value, hit, err = GetOrFetch(store, "key", time.Hour, fetch)
	require.NoError(t, err)
	assert.True(t, hit, "second read should be served from cache")
	assert.Equal(t, "value", value)
	assert.Equal(t, 1, fetches, "fetch should run exactly once")
}

func TestGetOrFetch_ExpiryTriggersRefetch(t *testing.T) {
	store := New(true, time.Minute)

	fetches := 0
	fetch := func() (int, error) {
		fetches++
		return fetches, nil
	}

	value, _, err := GetOrFetch(store, "key", 20*time.Millisecond, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	time.Sleep(30 * time.Millisecond)

	value, hit, err := GetOrFetch(store, "key", 20*time.Millisecond, fetch)
	require.NoError(t, err)
	assert.False(t, hit, "expired entry should be indistinguishable from a missing one")
	assert.Equal(t, 2, value)
	assert.Equal(t, 2, fetches)
}

func TestGetOrFetch_FetchErrorLeavesOldEntryUntouched(t *testing.T) {
	store := New(true, time.Minute)

	_, _, err := GetOrFetch(store, "key", 20*time.Millisecond, func() (string, error) {
		return "old", nil
	})
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	// The stale entry must not be served as a silent substitute.
	_, hit, err := GetOrFetch(store, "key", 20*time.Millisecond, func() (string, error) {
		return "", errors.New("remote unreachable")
	})
	assert.Error(t, err)
	assert.False(t, hit)

	// A later successful refresh replaces the entry.
	value, _, err := GetOrFetch(store, "key", time.Hour, func() (string, error) {
		return "new", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", value)
}

func TestGetOrFetch_Disabled(t *testing.T) {
	store := New(false, time.Minute)

	fetches := 0
	fetch := func() (string, error) {
		fetches++
		return "value", nil
	}

	for i := 0; i < 2; i++ {
		value, hit, err := GetOrFetch(store, "key", time.Hour, fetch)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, "value", value)
	}
	assert.Equal(t, 2, fetches, "disabled cache should fetch every time")
}

func TestStore_Clear(t *testing.T) {
	store := New(true, time.Minute)

	fetches := 0
	fetch := func() (string, error) {
		fetches++
		return "value", nil
	}

	_, _, err := GetOrFetch(store, "key", time.Hour, fetch)
	require.NoError(t, err)

	store.Clear()

	_, hit, err := GetOrFetch(store, "key", time.Hour, fetch)
	require.NoError(t, err)
	assert.False(t, hit, "clear should drop every entry")
	assert.Equal(t, 2, fetches)
}

func TestGetOrFetch_TypeMismatchRefetches(t *testing.T) {
	store := New(true, time.Minute)

	_, _, err := GetOrFetch(store, "key", time.Hour, func() (string, error) {
		return "value", nil
	})
	require.NoError(t, err)

	// Same key read with a different shape drops the entry and refetches.
	value, hit, err := GetOrFetch(store, "key", time.Hour, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, value)
}
