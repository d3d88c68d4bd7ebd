package http

import (
	"context"
	"net/http"
	"strconv"

	"reviewshelf/internal/catalog"
	"reviewshelf/internal/httpx"
	"reviewshelf/internal/ranking"
)

// TopBooksResolver assembles the landing-page recommendation list.
type TopBooksResolver interface {
	Resolve(ctx context.Context, limit int) []catalog.BookRecord
	Loading() bool
}

type TopBooksHandler struct {
	resolver TopBooksResolver
}

func NewTopBooksHandler(resolver TopBooksResolver) *TopBooksHandler {
	return &TopBooksHandler{resolver: resolver}
}

// topBookEntry decorates a catalog record with the derived display
// fields, sparing the frontend the fallback-chain logic.
type topBookEntry struct {
	catalog.BookRecord
	CoverURL        string `json:"coverUrl,omitempty"`
	PublicationInfo string `json:"publicationInfo,omitempty"`
}

// Get serves the most-reviewed books with full catalog records. A failed
// resolution surfaces as an empty list, never as an error status.
func (h *TopBooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit := ranking.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	books := h.resolver.Resolve(r.Context(), limit)
	entries := make([]topBookEntry, len(books))
	for i, rec := range books {
		entries[i] = topBookEntry{
			BookRecord: rec,
			CoverURL:   catalog.CoverURL(rec),
		}
		if rec.VolumeInfo != nil {
			entries[i].PublicationInfo = catalog.PublicationInfo(*rec.VolumeInfo)
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{
		"books":   entries,
		"loading": h.resolver.Loading(),
	})
}
