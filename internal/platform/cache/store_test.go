package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	store.Set(ctx, "standings:s_1", "rows")

	value, ok := store.Get(ctx, "standings:s_1")
	require.True(t, ok)
	assert.Equal(t, "rows", value)

	current = current.Add(2 * time.Minute)
	_, ok = store.Get(ctx, "standings:s_1")
	assert.False(t, ok)
}

func TestStoreZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	store.Set(ctx, "league:lg_1", "detail")
	current = current.Add(48 * time.Hour)

	_, ok := store.Get(ctx, "league:lg_1")
	assert.True(t, ok)
}

func TestStoreInvalidatePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "standings:s_1", 1)
	store.Set(ctx, "standings:s_2", 2)
	store.Set(ctx, "league:lg_1", 3)

	store.InvalidatePrefix(ctx, "standings:")

	_, ok := store.Get(ctx, "standings:s_1")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "standings:s_2")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "league:lg_1")
	assert.True(t, ok)
}

func TestStoreGetOrLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "standings:s_1", loader)
		require.NoError(t, err)
		assert.Equal(t, "loaded", value)
	}
	assert.Equal(t, 1, loads)
}

func TestStoreGetOrLoadDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	_, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		return nil, errors.New("backend down")
	})
	require.Error(t, err)

	value, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
}
