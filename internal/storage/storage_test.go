package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contractTest exercises the behavior every KV backend must share.
func contractTest(t *testing.T, kv KV) {
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		_, ok, err := kv.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "reviews-b1", `[{"id":"r1"}]`))
		v, ok, err := kv.Get(ctx, "reviews-b1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `[{"id":"r1"}]`, v)
	})

	t.Run("overwrite is last-write-wins", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "reviews-b2", "old"))
		require.NoError(t, kv.Set(ctx, "reviews-b2", "new"))
		v, _, err := kv.Get(ctx, "reviews-b2")
		require.NoError(t, err)
		assert.Equal(t, "new", v)
	})

	t.Run("keys filters by prefix and sorts ascending", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "reviews-zz", "[]"))
		require.NoError(t, kv.Set(ctx, "reviews-aa", "[]"))
		require.NoError(t, kv.Set(ctx, "bookdesc-b1", "{}"))

		keys, err := kv.Keys(ctx, "reviews-")
		require.NoError(t, err)
		assert.Equal(t, []string{"reviews-aa", "reviews-b1", "reviews-b2", "reviews-zz"}, keys)
	})

	t.Run("no matching prefix", func(t *testing.T) {
		keys, err := kv.Keys(ctx, "nosuchprefix-")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestMemory(t *testing.T) {
	contractTest(t, NewMemory())
}

func TestBadger(t *testing.T) {
	db, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	contractTest(t, db)
}

func TestUnavailable(t *testing.T) {
	ctx := context.Background()
	kv := Unavailable{}

	_, ok, err := kv.Get(ctx, "any")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, kv.Set(ctx, "any", "v"), ErrUnavailable)

	keys, err := kv.Keys(ctx, "reviews-")
	assert.Empty(t, keys)
	assert.ErrorIs(t, err, ErrUnavailable)
}
