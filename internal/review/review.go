package review

import "errors"

// ErrNotFound is returned when a vote addresses a book or review index
// that does not exist.
var ErrNotFound = errors.New("review not found")

// ErrCorrupt marks a stored review list that failed to deserialize.
// It stays internal to the package boundary: List collapses it to an
// empty list, Vote reports it as ErrNotFound.
var ErrCorrupt = errors.New("corrupt review list")

// Review is a single star-rated text review. Once stored it is immutable
// except for Votes; reviews are never edited or deleted.
//
// Stars is deliberately not validated against any range: out-of-range
// values are stored and aggregated as given.
type Review struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Stars     float64 `json:"stars"`
	BookID    string  `json:"bookId"`
	Votes     int     `json:"votes"`
	Timestamp int64   `json:"timestamp,omitempty"`
}

// Average returns the arithmetic mean of the star values, unrounded.
// An empty list averages to exactly 0.
func Average(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Stars
	}
	return sum / float64(len(reviews))
}

// BestAndWorst picks the highest- and lowest-starred reviews. Ties go to
// the review appearing earliest in insertion order, for both ends. Both
// results are nil for an empty list; a single review is its own best and
// worst.
func BestAndWorst(reviews []Review) (best, worst *Review) {
	if len(reviews) == 0 {
		return nil, nil
	}
	best, worst = &reviews[0], &reviews[0]
	for i := 1; i < len(reviews); i++ {
		if reviews[i].Stars > best.Stars {
			best = &reviews[i]
		}
		if reviews[i].Stars < worst.Stars {
			worst = &reviews[i]
		}
	}
	return best, worst
}
