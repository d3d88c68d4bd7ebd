package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"reviewshelf/internal/httpx"
	"reviewshelf/internal/review"
)

// ReviewStore is the slice of the review store the handlers need.
type ReviewStore interface {
	List(ctx context.Context, bookID string) []review.Review
	Add(ctx context.Context, bookID string, r review.Review) (review.Review, error)
	Vote(ctx context.Context, bookID string, index, delta int) error
	AverageStars(ctx context.Context, bookID string) float64
	BestAndWorst(ctx context.Context, bookID string) (best, worst *review.Review)
}

type ReviewHandler struct {
	store ReviewStore
}

func NewReviewHandler(store ReviewStore) *ReviewHandler {
	return &ReviewHandler{store: store}
}

// List returns the stored reviews for one book; unknown books get an
// empty list, not an error.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	reviews := h.store.List(r.Context(), bookID)
	if reviews == nil {
		reviews = []review.Review{}
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

type createReviewRequest struct {
	BookID string        `json:"bookId"`
	Review review.Review `json:"review"`
}

// Create appends a review to a book's list. Submission is a thin
// append-only mutation and reports success whenever the payload decodes;
// a storage hiccup is logged upstream but never surfaced here.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if body.BookID == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "bad_request", "bookId is required")
		return
	}

	_, _ = h.store.Add(r.Context(), body.BookID, body.Review)
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type voteRequest struct {
	BookID      string `json:"bookId"`
	ReviewIndex int    `json:"reviewIndex"`
	Vote        int    `json:"vote"`
}

// Vote adjusts one review's vote count by a signed amount. A vote
// against a missing book or index reports failure without mutating.
func (h *ReviewHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var body voteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if err := h.store.Vote(r.Context(), body.BookID, body.ReviewIndex, body.Vote); err != nil {
		if errors.Is(err, review.ErrNotFound) {
			httpx.JSON(w, http.StatusNotFound, map[string]interface{}{"success": false})
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "could not record vote")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Stats serves the per-book display aggregates: mean stars plus the
// best and worst review (null when the book has none).
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	best, worst := h.store.BestAndWorst(r.Context(), bookID)
	httpx.JSON(w, http.StatusOK, map[string]interface{}{
		"average": h.store.AverageStars(r.Context(), bookID),
		"best":    best,
		"worst":   worst,
	})
}
