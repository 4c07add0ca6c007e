package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/catalog-engine/internal/domain"
	"github.com/utafrali/catalog-engine/pkg/httputil"
)

// RecommendationEngine is the recommendation surface of the engine the
// handler depends on.
type RecommendationEngine interface {
	RelatedProducts(ctx context.Context, productID string, limit int) []domain.RelatedProduct
	FrequentlyBoughtTogether(ctx context.Context, productID string, limit int) []domain.ComplementaryProduct
	SimilarBySpecs(ctx context.Context, productID string, limit int) []domain.RelatedProduct
	SmartBundles(ctx context.Context, productID string, limit int) []domain.Bundle
	PersonalizedRecommendations(ctx context.Context, userID string, limit int) []domain.PersonalizedProduct
	CategoryRecommendations(ctx context.Context, categoryID string, limit int) []domain.Product
}

// RecommendationHandler handles HTTP requests for recommendation endpoints.
type RecommendationHandler struct {
	engine RecommendationEngine
	logger *slog.Logger
}

// NewRecommendationHandler creates a new recommendation HTTP handler.
func NewRecommendationHandler(eng RecommendationEngine, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		engine: eng,
		logger: logger,
	}
}

// Related handles GET /api/v1/recommendations/{productId}/related
func (h *RecommendationHandler) Related(w http.ResponseWriter, r *http.Request) {
	productID, ok := requireParam(w, r, "productId")
	if !ok {
		return
	}
	related := h.engine.RelatedProducts(r.Context(), productID, limitParam(r, 20))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"recommendations": related}})
}

// BoughtTogether handles GET /api/v1/recommendations/{productId}/bought-together
func (h *RecommendationHandler) BoughtTogether(w http.ResponseWriter, r *http.Request) {
	productID, ok := requireParam(w, r, "productId")
	if !ok {
		return
	}
	complementary := h.engine.FrequentlyBoughtTogether(r.Context(), productID, limitParam(r, 20))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"recommendations": complementary}})
}

// Similar handles GET /api/v1/recommendations/{productId}/similar
func (h *RecommendationHandler) Similar(w http.ResponseWriter, r *http.Request) {
	productID, ok := requireParam(w, r, "productId")
	if !ok {
		return
	}
	similar := h.engine.SimilarBySpecs(r.Context(), productID, limitParam(r, 20))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"recommendations": similar}})
}

// Bundles handles GET /api/v1/recommendations/{productId}/bundles
func (h *RecommendationHandler) Bundles(w http.ResponseWriter, r *http.Request) {
	productID, ok := requireParam(w, r, "productId")
	if !ok {
		return
	}
	bundles := h.engine.SmartBundles(r.Context(), productID, limitParam(r, 10))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"bundles": bundles}})
}

// Personalized handles GET /api/v1/recommendations/personalized
func (h *RecommendationHandler) Personalized(w http.ResponseWriter, r *http.Request) {
	// The gateway injects X-User-ID after JWT validation.
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return
	}
	recommendations := h.engine.PersonalizedRecommendations(r.Context(), userID, limitParam(r, 50))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"recommendations": recommendations}})
}

// Category handles GET /api/v1/recommendations/category/{categoryId}
func (h *RecommendationHandler) Category(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := requireParam(w, r, "categoryId")
	if !ok {
		return
	}
	products := h.engine.CategoryRecommendations(r.Context(), categoryID, limitParam(r, 50))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"recommendations": products}})
}

// requireParam extracts a non-empty chi URL parameter or writes a 400.
func requireParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := chi.URLParam(r, name)
	if v == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: name + " is required"},
		})
		return "", false
	}
	return v, true
}

// limitParam parses the optional limit query parameter, bounded by max.
func limitParam(r *http.Request, max int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= max {
			return l
		}
	}
	return 0
}
