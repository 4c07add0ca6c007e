package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/utafrali/catalog-engine/internal/domain"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// Search runs a typo-tolerant catalog search. Direct substring matches come
// first; when they do not fill the limit, a fuzzy phase scores the remaining
// products by edit distance against their indexed tokens. Catalog failures
// never surface as Go errors: the result carries a user-facing Error string
// and empty results instead.
func (e *Engine) Search(ctx context.Context, query string, opts domain.SearchOptions) *domain.SearchResult {
	start := time.Now()
	defer func() { searchDuration.Observe(time.Since(start).Seconds()) }()

	q := strings.ToLower(strings.TrimSpace(query))
	result := &domain.SearchResult{
		Query:   q,
		Results: []domain.SearchHit{},
	}
	if q == "" {
		result.SearchTimeMs = time.Since(start).Milliseconds()
		return result
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	minScore := domain.DefaultMinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}

	direct, err := e.catalog.SearchActiveProducts(ctx, q, opts.CategoryID)
	if err != nil {
		e.logger.ErrorContext(ctx, "search failed",
			slog.String("query", q),
			slog.Any("error", err),
		)
		result.Error = "search is temporarily unavailable"
		result.SearchTimeMs = time.Since(start).Milliseconds()
		return result
	}

	hits := make([]domain.SearchHit, 0, len(direct))
	seen := make(map[string]struct{}, len(direct))
	for i := range direct {
		hits = append(hits, domain.SearchHit{
			Product:     direct[i],
			SearchScore: relevanceScore(&direct[i], q),
			MatchType:   domain.MatchDirect,
		})
		seen[direct[i].ID] = struct{}{}
	}

	if len(hits) < limit {
		fuzzy, ferr := e.fuzzyMatches(ctx, q, opts.CategoryID, minScore, seen)
		if ferr != nil {
			// Direct results are still valid; serve them without the fuzzy tail.
			e.logger.WarnContext(ctx, "fuzzy search phase failed",
				slog.String("query", q),
				slog.Any("error", ferr),
			)
		} else {
			hits = append(hits, fuzzy...)
		}
	}

	sortHits(hits, opts.SortBy)
	result.TotalFound = len(hits)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	result.Results = hits

	if opts.IncludeSuggestions == nil || *opts.IncludeSuggestions {
		result.Suggestions = e.GenerateSuggestions(ctx, q)
	}

	result.SearchTimeMs = time.Since(start).Milliseconds()

	e.logger.DebugContext(ctx, "search completed",
		slog.String("query", q),
		slog.Int("total_found", result.TotalFound),
		slog.Int64("took_ms", result.SearchTimeMs),
	)
	return result
}

// fuzzyMatches scores every active product not already matched directly by
// the minimum edit distance between the query and the product's tokens.
// Products missing from the index (for example before the first rebuild) are
// tokenized inline so a cold index only costs latency, not recall.
func (e *Engine) fuzzyMatches(ctx context.Context, q string, categoryID *string, minScore float64, seen map[string]struct{}) ([]domain.SearchHit, error) {
	var (
		products []domain.Product
		err      error
	)
	if categoryID != nil && *categoryID != "" {
		products, err = e.catalog.ListActiveProductsByCategory(ctx, *categoryID)
	} else {
		products, err = e.catalog.ListActiveProducts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list fuzzy candidates: %w", err)
	}

	ix := e.currentIndex()
	threshold := fuzzyThreshold(q)

	var hits []domain.SearchHit
	for i := range products {
		p := &products[i]
		if _, ok := seen[p.ID]; ok {
			continue
		}

		tokens := ix.ProductTokens(p.ID)
		if tokens == nil {
			tokens = productTokens(p)
		}

		best := -1
		for _, tok := range tokens {
			if d := levenshtein(q, tok); best < 0 || d < best {
				best = d
			}
		}
		if best < 0 || best > threshold {
			continue
		}
		score := fuzzyScore(best, q)
		if score <= minScore {
			continue
		}

		hits = append(hits, domain.SearchHit{
			Product:     *p,
			SearchScore: score,
			MatchType:   domain.MatchFuzzy,
		})
		searchFuzzyHits.Inc()
	}
	return hits, nil
}
