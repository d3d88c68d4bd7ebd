package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"reviewshelf/internal/catalog"
	"reviewshelf/internal/httpx"
)

// Catalog is the remote book catalog as seen by the request layer.
type Catalog interface {
	Search(ctx context.Context, query string) ([]catalog.BookRecord, error)
	Lookup(ctx context.Context, id string) (catalog.BookRecord, error)
}

type BookHandler struct {
	catalog Catalog
}

func NewBookHandler(c Catalog) *BookHandler {
	return &BookHandler{catalog: c}
}

func parseBookID(path string) (string, bool) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) == 3 && parts[0] == "api" && parts[1] == "books" && parts[2] != "" {
		return parts[2], true
	}
	return "", false
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search proxies a free-text catalog search. This is a passthrough: an
// upstream failure propagates to the caller instead of being recovered
// here, and the UI turns it into a "no results" state.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	items, err := h.catalog.Search(r.Context(), body.Query)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadGateway, "catalog_unreachable", "book search failed")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Get returns one catalog record verbatim, including records that carry
// the catalog's own error payload for unknown identifiers.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBookID(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	rec, err := h.catalog.Lookup(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadGateway, "catalog_unreachable", "book lookup failed")
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}
