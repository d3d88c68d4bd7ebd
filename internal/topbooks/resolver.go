// Package topbooks assembles the landing-page recommendation list: the
// most-reviewed books, resolved from the local cache where possible and
// from the remote catalog otherwise.
package topbooks

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"reviewshelf/internal/catalog"
)

// Ranker supplies book identifiers ordered by review volume.
type Ranker interface {
	TopReviewed(ctx context.Context, limit int) ([]string, error)
}

// Fetcher performs the remote catalog lookup on a cache miss.
type Fetcher interface {
	Lookup(ctx context.Context, id string) (catalog.BookRecord, error)
}

// BookCache is the local record cache consulted before any remote call.
type BookCache interface {
	Get(ctx context.Context, bookID string) (catalog.BookRecord, bool)
	Set(ctx context.Context, bookID string, rec catalog.BookRecord)
}

type Resolver struct {
	ranker  Ranker
	cache   BookCache
	fetcher Fetcher
	log     zerolog.Logger
	loading atomic.Bool
}

func NewResolver(ranker Ranker, cache BookCache, fetcher Fetcher, log zerolog.Logger) *Resolver {
	return &Resolver{ranker: ranker, cache: cache, fetcher: fetcher, log: log}
}

// Loading reports whether a resolution is currently in flight, including
// all of its concurrent per-book lookups.
func (r *Resolver) Loading() bool {
	return r.loading.Load()
}

// Resolve returns full records for the top-reviewed books, in rank order.
//
// Per-book resolution runs concurrently: a cache hit is used without any
// remote call, a miss falls through to the fetcher and a successful
// fetch is cached for next time. Each failure is isolated: a book whose
// lookup fails, or whose record comes back empty or as an error payload,
// is logged and dropped from the result without disturbing the others.
// A total ranking failure degrades to an empty list rather than an error.
func (r *Resolver) Resolve(ctx context.Context, limit int) []catalog.BookRecord {
	r.loading.Store(true)
	defer r.loading.Store(false)

	ids, err := r.ranker.TopReviewed(ctx, limit)
	if err != nil {
		r.log.Error().Err(err).Msg("top-books ranking failed")
		return []catalog.BookRecord{}
	}
	if len(ids) == 0 {
		return []catalog.BookRecord{}
	}

	// Fan out one task per identifier into a slot per rank, so the join
	// reassembles in rank order no matter which lookups finish first.
	results := make([]*catalog.BookRecord, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			rec, ok := r.resolveOne(ctx, id)
			if ok {
				results[i] = &rec
			}
			return nil
		})
	}
	_ = g.Wait()

	books := make([]catalog.BookRecord, 0, len(ids))
	for _, rec := range results {
		if rec != nil {
			books = append(books, *rec)
		}
	}
	return books
}

func (r *Resolver) resolveOne(ctx context.Context, id string) (catalog.BookRecord, bool) {
	if rec, ok := r.cache.Get(ctx, id); ok {
		return rec, true
	}

	rec, err := r.fetcher.Lookup(ctx, id)
	if err != nil {
		r.log.Warn().Str("book_id", id).Err(err).Msg("book lookup failed")
		return catalog.BookRecord{}, false
	}
	if rec.Empty() {
		r.log.Debug().Str("book_id", id).Msg("book lookup returned no data")
		return catalog.BookRecord{}, false
	}
	r.cache.Set(ctx, id, rec)
	return rec, true
}
