package ranking

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewshelf/internal/review"
	"reviewshelf/internal/storage"
)

func seedReviews(t *testing.T, kv storage.KV, bookID string, count int) {
	t.Helper()
	store := review.NewStore(kv, zerolog.Nop())
	for i := 0; i < count; i++ {
		_, err := store.Add(context.Background(), bookID, review.Review{Stars: 4})
		require.NoError(t, err)
	}
}

func TestEngine_TopReviewed(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by descending review count", func(t *testing.T) {
		kv := storage.NewMemory()
		seedReviews(t, kv, "book1", 2)
		seedReviews(t, kv, "book2", 4)
		seedReviews(t, kv, "book3", 1)

		ids, err := NewEngine(kv, zerolog.Nop()).TopReviewed(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"book2", "book1", "book3"}, ids)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		kv := storage.NewMemory()
		seedReviews(t, kv, "a", 3)
		seedReviews(t, kv, "b", 2)
		seedReviews(t, kv, "c", 1)

		ids, err := NewEngine(kv, zerolog.Nop()).TopReviewed(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids)
	})

	t.Run("non-positive limit yields empty", func(t *testing.T) {
		kv := storage.NewMemory()
		seedReviews(t, kv, "a", 3)
		engine := NewEngine(kv, zerolog.Nop())

		for _, limit := range []int{0, -1, -10} {
			ids, err := engine.TopReviewed(ctx, limit)
			require.NoError(t, err)
			assert.Empty(t, ids)
		}
	})

	t.Run("empty store yields empty", func(t *testing.T) {
		ids, err := NewEngine(storage.NewMemory(), zerolog.Nop()).TopReviewed(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("unavailable medium yields empty without error", func(t *testing.T) {
		ids, err := NewEngine(storage.Unavailable{}, zerolog.Nop()).TopReviewed(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("zero-review books never rank", func(t *testing.T) {
		kv := storage.NewMemory()
		require.NoError(t, kv.Set(ctx, review.StorageKey("hollow"), "[]"))
		seedReviews(t, kv, "real", 1)

		ids, err := NewEngine(kv, zerolog.Nop()).TopReviewed(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"real"}, ids)
	})

	t.Run("corrupt entry does not poison the scan", func(t *testing.T) {
		kv := storage.NewMemory()
		seedReviews(t, kv, "good1", 2)
		require.NoError(t, kv.Set(ctx, review.StorageKey("broken"), "{corrupt"))
		seedReviews(t, kv, "good2", 1)

		ids, err := NewEngine(kv, zerolog.Nop()).TopReviewed(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"good1", "good2"}, ids)
	})

	t.Run("keys outside the review prefix are ignored", func(t *testing.T) {
		kv := storage.NewMemory()
		require.NoError(t, kv.Set(ctx, "bookdesc-x", `{"id":"x"}`))
		seedReviews(t, kv, "only", 1)

		ids, err := NewEngine(kv, zerolog.Nop()).TopReviewed(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"only"}, ids)
	})

	t.Run("equal counts break ties by ascending book id", func(t *testing.T) {
		kv := storage.NewMemory()
		seedReviews(t, kv, "zeta", 2)
		seedReviews(t, kv, "alpha", 2)
		seedReviews(t, kv, "mid", 2)

		ids, err := NewEngine(kv, zerolog.Nop()).TopReviewed(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, ids)
	})
}
