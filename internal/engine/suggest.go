package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/utafrali/catalog-engine/internal/domain"
)

const (
	maxSuggestions        = 8
	maxProductSuggestions = 5
	defaultAutocomplete   = 8
	minAutocompleteChars  = 2

	defaultTrendingLimit = 5
	trendingCacheKey     = "catalog:trending"
	trendingCacheTTL     = 5 * time.Minute
)

// Suggestion weights by source.
const (
	weightCategorySuggestion   = 0.9
	weightProductSuggestion    = 0.8
	weightCorrectionSuggestion = 0.7
)

// GenerateSuggestions produces "did you mean" entries for a query from three
// sources: categories whose indexed tokens match, the top five matching
// product names, and the static correction table. At most eight suggestions
// are returned, strongest first. Catalog failures degrade to whatever
// sources still answered.
func (e *Engine) GenerateSuggestions(ctx context.Context, query string) []domain.Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	suggestions := make([]domain.Suggestion, 0, maxSuggestions)
	if q == "" {
		return suggestions
	}

	seen := make(map[string]struct{})
	add := func(s domain.Suggestion) bool {
		key := strings.ToLower(s.Text)
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, s)
		return true
	}

	ix := e.currentIndex()
	categories, err := e.catalog.ListActiveCategories(ctx)
	if err != nil {
		e.logger.WarnContext(ctx, "suggestions: category lookup failed", slog.Any("error", err))
	} else {
		for i := range categories {
			if categoryMatches(ix, &categories[i], q) {
				add(domain.Suggestion{
					Kind:   domain.SuggestionCategory,
					Text:   categories[i].Name.Get("en"),
					RefID:  categories[i].ID,
					Weight: weightCategorySuggestion,
				})
			}
		}
	}

	products, err := e.catalog.SearchActiveProducts(ctx, q, nil)
	if err != nil {
		e.logger.WarnContext(ctx, "suggestions: product lookup failed", slog.Any("error", err))
	} else {
		added := 0
		for i := range products {
			if added == maxProductSuggestions {
				break
			}
			if !products[i].Name.Contains(q) {
				continue
			}
			if add(domain.Suggestion{
				Kind:   domain.SuggestionProduct,
				Text:   products[i].Name.Get("en"),
				RefID:  products[i].ID,
				Weight: weightProductSuggestion,
			}) {
				added++
			}
		}
	}

	for key, values := range e.corrections {
		if !correctionApplies(key, values, q) {
			continue
		}
		for _, v := range values {
			if strings.Contains(v, q) {
				continue
			}
			add(domain.Suggestion{
				Kind:   domain.SuggestionCorrection,
				Text:   v,
				Weight: weightCorrectionSuggestion,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Weight > suggestions[j].Weight
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// categoryMatches checks the query against the category's indexed tokens,
// which cover both name and description. Before the first rebuild the index
// has no entry and the name alone is matched.
func categoryMatches(ix *Index, c *domain.Category, q string) bool {
	tokens := ix.CategoryTokens(c.ID)
	if tokens == nil {
		return c.Name.Contains(q)
	}
	for _, tok := range tokens {
		if strings.Contains(tok, q) {
			return true
		}
	}
	return false
}

// correctionApplies reports whether the query matches a correction entry: the
// query must be a substring of the key or of any value.
func correctionApplies(key string, values []string, q string) bool {
	if strings.Contains(key, q) {
		return true
	}
	for _, v := range values {
		if strings.Contains(v, q) {
			return true
		}
	}
	return false
}

// Autocomplete returns up to limit completions for a prefix, anchored on
// product names only. Prefixes shorter than two characters return nothing.
func (e *Engine) Autocomplete(ctx context.Context, prefix string, limit int) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	completions := make([]string, 0)
	if len([]rune(p)) < minAutocompleteChars {
		return completions
	}
	if limit <= 0 {
		limit = defaultAutocomplete
	}

	seen := make(map[string]struct{})
	products, err := e.catalog.SearchActiveProducts(ctx, p, nil)
	if err != nil {
		e.logger.WarnContext(ctx, "autocomplete: product lookup failed", slog.Any("error", err))
		products = nil
	}
	for i := range products {
		for _, name := range products[i].Name.Values() {
			if !strings.HasPrefix(strings.ToLower(name), p) {
				continue
			}
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			completions = append(completions, name)
		}
	}

	sort.Strings(completions)
	if len(completions) > limit {
		completions = completions[:limit]
	}
	return completions
}

// TrendingSearches returns the categories with the most active products,
// largest first. The full list is cached so repeated calls within the TTL
// skip the catalog entirely.
func (e *Engine) TrendingSearches(ctx context.Context, limit int) []domain.TrendingCategory {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	if e.cache != nil {
		if raw, ok := e.cache.Get(ctx, trendingCacheKey); ok {
			var cached []domain.TrendingCategory
			if err := json.Unmarshal(raw, &cached); err == nil {
				return truncateTrending(cached, limit)
			}
			e.logger.WarnContext(ctx, "trending: stale cache entry discarded")
		}
	}

	counts, err := e.catalog.CountActiveProductsByCategory(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "trending: product counts failed", slog.Any("error", err))
		return []domain.TrendingCategory{}
	}
	categories, err := e.catalog.ListActiveCategories(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "trending: category lookup failed", slog.Any("error", err))
		return []domain.TrendingCategory{}
	}

	trending := make([]domain.TrendingCategory, 0, len(categories))
	for _, c := range categories {
		n := counts[c.ID]
		if n == 0 {
			continue
		}
		trending = append(trending, domain.TrendingCategory{
			CategoryID:   c.ID,
			Name:         c.Name,
			ProductCount: n,
		})
	}
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].ProductCount > trending[j].ProductCount
	})

	if e.cache != nil {
		if raw, err := json.Marshal(trending); err == nil {
			e.cache.Set(ctx, trendingCacheKey, raw, trendingCacheTTL)
		}
	}
	return truncateTrending(trending, limit)
}

func truncateTrending(trending []domain.TrendingCategory, limit int) []domain.TrendingCategory {
	if len(trending) > limit {
		return trending[:limit]
	}
	return trending
}
