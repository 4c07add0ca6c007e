package engine

import (
	"sort"
	"strings"

	"github.com/utafrali/catalog-engine/internal/domain"
)

// Relevance contributions for direct matches. Name and description
// contributions stack across language variants; the tag contribution is
// awarded once regardless of how many tags match.
const (
	scoreNameLeading = 1.0
	scoreNameInner   = 0.8
	scoreSKUExact    = 1.0
	scoreDescription = 0.6
	scoreTag         = 0.5
	scoreFeatured    = 0.2
	scoreInStock     = 0.1
)

// relevanceScore computes the additive relevance of a product for a
// lowercased query.
func relevanceScore(p *domain.Product, query string) float64 {
	var score float64

	for _, name := range p.Name.Values() {
		switch idx := strings.Index(strings.ToLower(name), query); {
		case idx == 0:
			score += scoreNameLeading
		case idx > 0:
			score += scoreNameInner
		}
	}

	if p.SKU != "" && strings.EqualFold(p.SKU, query) {
		score += scoreSKUExact
	}

	for _, desc := range p.Description.Values() {
		if strings.Contains(strings.ToLower(desc), query) {
			score += scoreDescription
		}
	}

	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			score += scoreTag
			break
		}
	}

	if p.IsFeatured {
		score += scoreFeatured
	}
	if p.Inventory.InStock {
		score += scoreInStock
	}

	return score
}

// sortHits orders search hits according to the requested sort. Unknown sort
// values fall back to relevance.
func sortHits(hits []domain.SearchHit, sortBy string) {
	switch sortBy {
	case domain.SortPriceLow:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].EffectivePrice() < hits[j].EffectivePrice()
		})
	case domain.SortPriceHigh:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].EffectivePrice() > hits[j].EffectivePrice()
		})
	case domain.SortRating:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].Rating.Average > hits[j].Rating.Average
		})
	case domain.SortNewest:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].CreatedAt.After(hits[j].CreatedAt)
		})
	default:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].SearchScore > hits[j].SearchScore
		})
	}
}
