// Package ranking orders book identifiers by how many reviews they have
// accumulated in the local store.
//
// The engine never inspects review contents; it only counts list lengths.
// A corrupt entry costs that one book its rank, never the whole scan.
package ranking

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"reviewshelf/internal/review"
	"reviewshelf/internal/storage"
)

// DefaultLimit is used when callers do not care how many ranks they get.
const DefaultLimit = 10

type Engine struct {
	kv  storage.KV
	log zerolog.Logger
}

func NewEngine(kv storage.KV, log zerolog.Logger) *Engine {
	return &Engine{kv: kv, log: log}
}

// TopReviewed returns up to limit book identifiers ordered by descending
// review count. Books with equal counts rank in ascending identifier
// order, which keeps the result deterministic for a fixed store.
//
// limit <= 0, an empty store, and an unavailable medium all yield an
// empty result with no error.
func (e *Engine) TopReviewed(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	keys, err := e.kv.Keys(ctx, review.KeyPrefix)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return nil, nil
		}
		return nil, err
	}

	type ranked struct {
		bookID string
		count  int
	}
	counts := make([]ranked, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := e.kv.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		reviews, err := review.ParseList(raw)
		if err != nil {
			e.log.Warn().Str("key", key).Err(err).Msg("skipping unparseable review list")
			continue
		}
		if len(reviews) == 0 {
			continue
		}
		counts = append(counts, ranked{bookID: review.BookIDFromKey(key), count: len(reviews)})
	}

	// Keys arrive sorted ascending, so a stable sort fixes the tie order.
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}
	ids := make([]string, len(counts))
	for i, c := range counts {
		ids[i] = c.bookID
	}
	return ids, nil
}
