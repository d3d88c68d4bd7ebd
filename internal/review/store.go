package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reviewshelf/internal/storage"
)

// KeyPrefix namespaces review lists inside the shared KV medium.
const KeyPrefix = "reviews-"

// StorageKey returns the KV key holding the review list for a book.
func StorageKey(bookID string) string {
	return KeyPrefix + bookID
}

// BookIDFromKey recovers the book identifier from a review-list key.
func BookIDFromKey(key string) string {
	return strings.TrimPrefix(key, KeyPrefix)
}

// ParseList deserializes a stored review list. An empty value parses to
// an empty list; anything undecodable reports ErrCorrupt.
func ParseList(raw string) ([]Review, error) {
	if raw == "" {
		return nil, nil
	}
	var reviews []Review
	if err := json.Unmarshal([]byte(raw), &reviews); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return reviews, nil
}

// Store keeps insertion-ordered review lists in the KV medium, one list
// per book identifier. Lists only ever grow.
type Store struct {
	kv  storage.KV
	log zerolog.Logger
}

func NewStore(kv storage.KV, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// List returns the reviews for a book in insertion order. Absence, a
// corrupt entry, and an unavailable medium all degrade to an empty list.
func (s *Store) List(ctx context.Context, bookID string) []Review {
	reviews, err := s.list(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			s.log.Warn().Str("book_id", bookID).Err(err).Msg("skipping corrupt review list")
		}
		return nil
	}
	return reviews
}

func (s *Store) list(ctx context.Context, bookID string) ([]Review, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey(bookID))
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return nil, nil
		}
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return ParseList(raw)
}

// Add appends a review to the book's list, creating the list on first
// write. Votes always start at 0 and a UUID is assigned when the caller
// did not supply an ID. A corrupt existing list is replaced rather than
// blocking new submissions.
func (s *Store) Add(ctx context.Context, bookID string, r Review) (Review, error) {
	r.BookID = bookID
	r.Votes = 0
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	reviews, err := s.list(ctx, bookID)
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return Review{}, err
		}
		s.log.Warn().Str("book_id", bookID).Msg("replacing corrupt review list")
		reviews = nil
	}
	reviews = append(reviews, r)

	if err := s.save(ctx, bookID, reviews); err != nil {
		return Review{}, err
	}
	return r, nil
}

// Vote adjusts the vote count of one review by the signed delta. It
// reports ErrNotFound, without mutating anything, when the book has no
// reviews or the index is out of range.
func (s *Store) Vote(ctx context.Context, bookID string, index, delta int) error {
	reviews, err := s.list(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			return ErrNotFound
		}
		return err
	}
	if index < 0 || index >= len(reviews) {
		return ErrNotFound
	}
	reviews[index].Votes += delta
	return s.save(ctx, bookID, reviews)
}

func (s *Store) save(ctx context.Context, bookID string, reviews []Review) error {
	encoded, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("encode review list for %s: %w", bookID, err)
	}
	if err := s.kv.Set(ctx, StorageKey(bookID), string(encoded)); err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			return nil
		}
		return err
	}
	return nil
}

// AverageStars computes the mean star rating of a book's stored reviews.
func (s *Store) AverageStars(ctx context.Context, bookID string) float64 {
	return Average(s.List(ctx, bookID))
}

// BestAndWorst returns the book's highest- and lowest-starred reviews.
func (s *Store) BestAndWorst(ctx context.Context, bookID string) (best, worst *Review) {
	return BestAndWorst(s.List(ctx, bookID))
}
