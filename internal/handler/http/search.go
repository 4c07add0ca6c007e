package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/utafrali/catalog-engine/internal/domain"
	"github.com/utafrali/catalog-engine/pkg/httputil"
)

// SearchHandler handles HTTP requests for search endpoints.
type SearchHandler struct {
	engine SearchEngine
	logger *slog.Logger
}

// SearchEngine is the search surface of the engine the handler depends on.
type SearchEngine interface {
	Search(ctx context.Context, query string, opts domain.SearchOptions) *domain.SearchResult
	Autocomplete(ctx context.Context, prefix string, limit int) []string
	GenerateSuggestions(ctx context.Context, query string) []domain.Suggestion
	TrendingSearches(ctx context.Context, limit int) []domain.TrendingCategory
	Rebuild(ctx context.Context) error
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(eng SearchEngine, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		engine: eng,
		logger: logger,
	}
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	sortBy := r.URL.Query().Get("sort")
	if sortBy != "" && !domain.IsValidSort(sortBy) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "sort must be one of: " + strings.Join(domain.ValidSortOptions(), ", "),
			},
		})
		return
	}

	opts := domain.SearchOptions{SortBy: sortBy}

	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		opts.CategoryID = &v
	}
	if v := r.URL.Query().Get("min_score"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || score < 0 || score > 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "min_score must be a number between 0 and 1"},
			})
			return
		}
		opts.MinScore = &score
	}
	if v := r.URL.Query().Get("suggestions"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "suggestions must be true or false"},
			})
			return
		}
		opts.IncludeSuggestions = &include
	}

	result := h.engine.Search(r.Context(), query, opts)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Autocomplete handles GET /api/v1/search/autocomplete
func (h *SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	prefix := strings.TrimSpace(r.URL.Query().Get("q"))

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 20 {
			limit = l
		}
	}

	completions := h.engine.Autocomplete(r.Context(), prefix, limit)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"suggestions": completions}})
}

// Suggestions handles GET /api/v1/search/suggestions
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	suggestions := h.engine.GenerateSuggestions(r.Context(), query)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"suggestions": suggestions}})
}

// Trending handles GET /api/v1/search/trending
func (h *SearchHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 20 {
			limit = l
		}
	}

	trending := h.engine.TrendingSearches(r.Context(), limit)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"trending": trending}})
}

// Reindex handles POST /api/v1/search/reindex
func (h *SearchHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	go func() {
		ctx := context.Background()
		if err := h.engine.Rebuild(ctx); err != nil {
			h.logger.ErrorContext(ctx, "background reindex failed", slog.Any("error", err))
		}
	}()

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{Data: map[string]string{"status": "reindex started"}})
}
