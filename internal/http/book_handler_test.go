package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewshelf/internal/catalog"
	"reviewshelf/internal/testutil"
)

type fakeCatalog struct {
	searchItems []catalog.BookRecord
	searchErr   error
	lookupRec   catalog.BookRecord
	lookupErr   error
	lookupID    string
}

func (f *fakeCatalog) Search(_ context.Context, query string) ([]catalog.BookRecord, error) {
	return f.searchItems, f.searchErr
}

func (f *fakeCatalog) Lookup(_ context.Context, id string) (catalog.BookRecord, error) {
	f.lookupID = id
	if f.lookupErr != nil {
		return catalog.BookRecord{}, f.lookupErr
	}
	if f.lookupRec.ID != "" || f.lookupRec.VolumeInfo != nil || f.lookupRec.Error != nil {
		return f.lookupRec, nil
	}
	// Echo a synthetic volume so integration tests can follow identifiers.
	return catalog.BookRecord{ID: id, VolumeInfo: &catalog.VolumeInfo{Title: "title-" + id}}, nil
}

func TestBookHandler_Search(t *testing.T) {
	t.Run("returns catalog items", func(t *testing.T) {
		c := &fakeCatalog{searchItems: []catalog.BookRecord{
			{ID: "b1", VolumeInfo: &catalog.VolumeInfo{Title: "Dune"}},
		}}
		w := httptest.NewRecorder()
		NewBookHandler(c).Search(w, testutil.NewRequest(http.MethodPost, "/api/books", map[string]string{"query": "dune"}))

		res := testutil.Record(w)
		assert.Equal(t, http.StatusOK, res.Code)
		items, ok := res.Body["items"].([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)
	})

	t.Run("no matches is an empty list, not an error", func(t *testing.T) {
		c := &fakeCatalog{searchItems: []catalog.BookRecord{}}
		w := httptest.NewRecorder()
		NewBookHandler(c).Search(w, testutil.NewRequest(http.MethodPost, "/api/books", map[string]string{"query": "zzz"}))

		res := testutil.Record(w)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, []interface{}{}, res.Body["items"])
	})

	t.Run("upstream failure propagates", func(t *testing.T) {
		c := &fakeCatalog{searchErr: errors.New("catalog down")}
		w := httptest.NewRecorder()
		NewBookHandler(c).Search(w, testutil.NewRequest(http.MethodPost, "/api/books", map[string]string{"query": "dune"}))
		assert.Equal(t, http.StatusBadGateway, testutil.Record(w).Code)
	})

	t.Run("invalid body is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewBookHandler(&fakeCatalog{}).Search(w, httptest.NewRequest(http.MethodPost, "/api/books", nil))
		assert.Equal(t, http.StatusBadRequest, testutil.Record(w).Code)
	})
}

func TestBookHandler_Get(t *testing.T) {
	t.Run("returns the record verbatim", func(t *testing.T) {
		c := &fakeCatalog{lookupRec: catalog.BookRecord{ID: "b1", VolumeInfo: &catalog.VolumeInfo{Title: "Dune"}}}
		w := httptest.NewRecorder()
		NewBookHandler(c).Get(w, testutil.NewRequest(http.MethodGet, "/api/books/b1", nil))

		res := testutil.Record(w)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "b1", res.Body["id"])
		assert.Equal(t, "b1", c.lookupID)
	})

	t.Run("error-payload records pass through with 200", func(t *testing.T) {
		c := &fakeCatalog{lookupRec: catalog.BookRecord{Error: &catalog.APIError{Code: 404, Message: "not found"}}}
		w := httptest.NewRecorder()
		NewBookHandler(c).Get(w, testutil.NewRequest(http.MethodGet, "/api/books/missing", nil))

		res := testutil.Record(w)
		assert.Equal(t, http.StatusOK, res.Code)
		errBody, ok := res.Body["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 404.0, errBody["code"])
	})

	t.Run("transport failure propagates", func(t *testing.T) {
		c := &fakeCatalog{lookupErr: errors.New("timeout")}
		w := httptest.NewRecorder()
		NewBookHandler(c).Get(w, testutil.NewRequest(http.MethodGet, "/api/books/b1", nil))
		assert.Equal(t, http.StatusBadGateway, testutil.Record(w).Code)
	})

	t.Run("malformed path is not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewBookHandler(&fakeCatalog{}).Get(w, testutil.NewRequest(http.MethodGet, "/api/books/b1/extra", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
