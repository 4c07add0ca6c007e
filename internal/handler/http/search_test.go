package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalog-engine/internal/domain"
	"github.com/utafrali/catalog-engine/pkg/httputil"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubSearchEngine records the last call and returns canned responses.
type stubSearchEngine struct {
	lastQuery    string
	lastOpts     domain.SearchOptions
	rebuilds     atomic.Int32
	searchResult *domain.SearchResult
}

func (s *stubSearchEngine) Search(_ context.Context, query string, opts domain.SearchOptions) *domain.SearchResult {
	s.lastQuery = query
	s.lastOpts = opts
	if s.searchResult != nil {
		return s.searchResult
	}
	return &domain.SearchResult{Query: query, Results: []domain.SearchHit{}}
}

func (s *stubSearchEngine) Autocomplete(context.Context, string, int) []string {
	return []string{"Ceramic Basin"}
}

func (s *stubSearchEngine) GenerateSuggestions(context.Context, string) []domain.Suggestion {
	return []domain.Suggestion{{Kind: domain.SuggestionCorrection, Text: "faucet", Weight: 0.7}}
}

func (s *stubSearchEngine) TrendingSearches(context.Context, int) []domain.TrendingCategory {
	return []domain.TrendingCategory{{CategoryID: "ceramics", ProductCount: 3}}
}

func (s *stubSearchEngine) Rebuild(context.Context) error {
	s.rebuilds.Add(1)
	return nil
}

func newSearchRouter(stub *stubSearchEngine) http.Handler {
	h := NewSearchHandler(stub, newTestLogger())
	r := chi.NewRouter()
	r.Route("/api/v1/search", func(r chi.Router) {
		r.Get("/", h.Search)
		r.Get("/autocomplete", h.Autocomplete)
		r.Get("/suggestions", h.Suggestions)
		r.Get("/trending", h.Trending)
		r.Post("/reindex", h.Reindex)
	})
	return r
}

func TestSearchHandler_ParsesParameters(t *testing.T) {
	stub := &stubSearchEngine{}
	router := newSearchRouter(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/search?q=basin&limit=5&category_id=ceramics&min_score=0.5&suggestions=false&sort=price_low", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "basin", stub.lastQuery)
	assert.Equal(t, 5, stub.lastOpts.Limit)
	require.NotNil(t, stub.lastOpts.CategoryID)
	assert.Equal(t, "ceramics", *stub.lastOpts.CategoryID)
	require.NotNil(t, stub.lastOpts.MinScore)
	assert.InDelta(t, 0.5, *stub.lastOpts.MinScore, 1e-9)
	require.NotNil(t, stub.lastOpts.IncludeSuggestions)
	assert.False(t, *stub.lastOpts.IncludeSuggestions)
	assert.Equal(t, domain.SortPriceLow, stub.lastOpts.SortBy)
}

func TestSearchHandler_InvalidSort(t *testing.T) {
	router := newSearchRouter(&stubSearchEngine{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=basin&sort=alphabetical", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp httputil.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

func TestSearchHandler_InvalidMinScore(t *testing.T) {
	router := newSearchRouter(&stubSearchEngine{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=basin&min_score=1.5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler_InvalidSuggestionsFlag(t *testing.T) {
	router := newSearchRouter(&stubSearchEngine{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=basin&suggestions=maybe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler_Autocomplete(t *testing.T) {
	router := newSearchRouter(&stubSearchEngine{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/autocomplete?q=ce", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Suggestions []string `json:"suggestions"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"Ceramic Basin"}, resp.Data.Suggestions)
}

func TestSearchHandler_Trending(t *testing.T) {
	router := newSearchRouter(&stubSearchEngine{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/trending?limit=3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchHandler_ReindexRunsInBackground(t *testing.T) {
	stub := &stubSearchEngine{}
	router := newSearchRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/reindex", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Eventually(t, func() bool {
		return stub.rebuilds.Load() == 1
	}, time.Second, 10*time.Millisecond)
}
