package catalog

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"reviewshelf/internal/storage"
)

// CacheKeyPrefix namespaces cached catalog records inside the shared KV
// medium, alongside the review lists.
const CacheKeyPrefix = "bookdesc-"

func cacheKey(bookID string) string {
	return CacheKeyPrefix + bookID
}

// Cache stores one catalog record per book identifier so repeat
// resolutions skip the remote lookup. Entries are overwritten on every
// fresh fetch and never expire.
type Cache struct {
	kv  storage.KV
	log zerolog.Logger
}

func NewCache(kv storage.KV, log zerolog.Logger) *Cache {
	return &Cache{kv: kv, log: log}
}

// Get returns the cached record for a book. Absence, a corrupt entry,
// and an unavailable medium all report a miss; a read failure must never
// block the caller from falling through to the remote path.
func (c *Cache) Get(ctx context.Context, bookID string) (BookRecord, bool) {
	raw, ok, err := c.kv.Get(ctx, cacheKey(bookID))
	if err != nil {
		if !errors.Is(err, storage.ErrUnavailable) {
			c.log.Warn().Str("book_id", bookID).Err(err).Msg("book cache read failed")
		}
		return BookRecord{}, false
	}
	if !ok {
		return BookRecord{}, false
	}
	var rec BookRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		c.log.Warn().Str("book_id", bookID).Err(err).Msg("dropping corrupt cache entry")
		return BookRecord{}, false
	}
	return rec, true
}

// Set overwrites the cached record for a book. Failures are logged and
// swallowed; caching is best-effort and a write error must not fail the
// resolution that produced the record.
func (c *Cache) Set(ctx context.Context, bookID string, rec BookRecord) {
	encoded, err := json.Marshal(rec)
	if err != nil {
		c.log.Warn().Str("book_id", bookID).Err(err).Msg("book cache encode failed")
		return
	}
	if err := c.kv.Set(ctx, cacheKey(bookID), string(encoded)); err != nil {
		if !errors.Is(err, storage.ErrUnavailable) {
			c.log.Warn().Str("book_id", bookID).Err(err).Msg("book cache write failed")
		}
	}
}
