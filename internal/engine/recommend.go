package engine

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/utafrali/catalog-engine/internal/domain"
)

const (
	defaultRelatedLimit      = 5
	defaultBundleLimit       = 3
	defaultPersonalizedLimit = 10
	defaultCategoryLimit     = 10

	// fbtCandidates caps how many complementary products feed bundle assembly.
	fbtCandidates = 10

	// personalizedPool caps the candidate pool before personalization scoring.
	personalizedPool = 50

	// specSimilarityCutoff drops weakly matching candidates in SimilarBySpecs.
	specSimilarityCutoff = 0.3

	recentWindow = 30 * 24 * time.Hour
)

// Overall similarity component weights.
const (
	simWeightPrice = 0.3
	simWeightSpecs = 0.4
	simWeightBrand = 0.2
	simWeightTags  = 0.1
)

// Complementary ("frequently bought together") score contributions.
const (
	fbtCategoryBonus = 0.5
	fbtPriceWeight   = 0.3
	fbtBrandBonus    = 0.2
	fbtFeaturedBonus = 0.3
	fbtRatingBonus   = 0.2
	fbtRatingCutoff  = 4.0
)

// Personalization score contributions.
const (
	persRatingWeight  = 0.3
	persFeaturedBonus = 1.5
	persSaleBonus     = 1.0
	persStockBonus    = 0.5
	persRecentBonus   = 0.5
)

// RelatedProducts scores every other active, in-stock product against the
// target and returns the most similar, regardless of category: the brand,
// price, tag, and specification terms are what let a matching product from
// another category rank. Unknown targets and catalog failures degrade to an
// empty result.
func (e *Engine) RelatedProducts(ctx context.Context, productID string, limit int) []domain.RelatedProduct {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	related := make([]domain.RelatedProduct, 0, limit)

	target, err := e.catalog.FindProductByID(ctx, productID)
	if err != nil {
		e.logger.WarnContext(ctx, "related products: target lookup failed",
			slog.String("product_id", productID), slog.Any("error", err))
		return related
	}

	candidates, err := e.catalog.ListActiveProducts(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "related products: candidate lookup failed",
			slog.String("product_id", productID), slog.Any("error", err))
		return related
	}

	for i := range candidates {
		c := &candidates[i]
		if c.ID == target.ID || !c.Inventory.InStock {
			continue
		}
		related = append(related, domain.RelatedProduct{
			Product:         *c,
			SimilarityScore: productSimilarity(target, c),
		})
	}
	sort.SliceStable(related, func(i, j int) bool {
		return related[i].SimilarityScore > related[j].SimilarityScore
	})
	if len(related) > limit {
		related = related[:limit]
	}
	return related
}

// FrequentlyBoughtTogether returns products that complement the target,
// drawn from complementary categories and complementary tag rules.
func (e *Engine) FrequentlyBoughtTogether(ctx context.Context, productID string, limit int) []domain.ComplementaryProduct {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	complementary := make([]domain.ComplementaryProduct, 0, limit)

	target, err := e.catalog.FindProductByID(ctx, productID)
	if err != nil {
		e.logger.WarnContext(ctx, "bought together: target lookup failed",
			slog.String("product_id", productID), slog.Any("error", err))
		return complementary
	}

	candidates, err := e.catalog.ListActiveProducts(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "bought together: candidate lookup failed",
			slog.String("product_id", productID), slog.Any("error", err))
		return complementary
	}

	compCats := make(map[string]struct{})
	for _, id := range e.complementaryCats[target.CategoryID] {
		compCats[id] = struct{}{}
	}
	compTags := e.complementaryTagsFor(target)

	for i := range candidates {
		c := &candidates[i]
		if c.ID == target.ID || !c.Inventory.InStock {
			continue
		}
		_, inCompCategory := compCats[c.CategoryID]
		if !inCompCategory && !tagsIntersect(c.Tags, compTags) {
			continue
		}

		score := (1 - priceRatio(target, c)) * fbtPriceWeight
		if inCompCategory {
			score += fbtCategoryBonus
		}
		if !strings.EqualFold(c.Brand, target.Brand) {
			score += fbtBrandBonus
		}
		if c.IsFeatured {
			score += fbtFeaturedBonus
		}
		if c.Rating.Average > fbtRatingCutoff {
			score += fbtRatingBonus
		}

		complementary = append(complementary, domain.ComplementaryProduct{
			Product:            *c,
			ComplementaryScore: score,
		})
	}
	sort.SliceStable(complementary, func(i, j int) bool {
		return complementary[i].ComplementaryScore > complementary[j].ComplementaryScore
	})
	if len(complementary) > limit {
		complementary = complementary[:limit]
	}
	return complementary
}

// SmartBundles pairs the anchor product with its strongest complementary
// products, one per bundle. TotalPrice is the full combined price; Savings
// is the flat discount the buyer takes off it.
func (e *Engine) SmartBundles(ctx context.Context, productID string, limit int) []domain.Bundle {
	if limit <= 0 {
		limit = defaultBundleLimit
	}
	bundles := make([]domain.Bundle, 0, limit)

	anchor, err := e.catalog.FindProductByID(ctx, productID)
	if err != nil {
		e.logger.WarnContext(ctx, "bundles: anchor lookup failed",
			slog.String("product_id", productID), slog.Any("error", err))
		return bundles
	}

	for _, comp := range e.FrequentlyBoughtTogether(ctx, productID, fbtCandidates) {
		if len(bundles) == limit {
			break
		}
		combined := anchor.EffectivePrice() + comp.EffectivePrice()
		savings := round2(combined * domain.BundleSavingsRate)
		bundles = append(bundles, domain.Bundle{
			Anchor:        *anchor,
			Complementary: []domain.Product{comp.Product},
			TotalPrice:    round2(combined),
			Savings:       savings,
			BundleType:    "complementary",
		})
	}
	return bundles
}

// SimilarBySpecs returns same-category products ranked by how many of the
// target's specification values they match, with numeric values compared at a
// ten percent tolerance. Targets without specifications yield nothing.
func (e *Engine) SimilarBySpecs(ctx context.Context, productID string, limit int) []domain.RelatedProduct {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	similar := make([]domain.RelatedProduct, 0, limit)

	target, err := e.catalog.FindProductByID(ctx, productID)
	if err != nil {
		e.logger.WarnContext(ctx, "similar by specs: target lookup failed",
			slog.String("product_id", productID), slog.Any("error", err))
		return similar
	}
	if len(target.Specifications) == 0 {
		return similar
	}

	candidates, err := e.catalog.ListActiveProductsByCategory(ctx, target.CategoryID)
	if err != nil {
		e.logger.ErrorContext(ctx, "similar by specs: candidate lookup failed",
			slog.String("product_id", productID), slog.Any("error", err))
		return similar
	}

	for i := range candidates {
		c := &candidates[i]
		if c.ID == target.ID || !c.Inventory.InStock {
			continue
		}
		matching := 0
		for key, want := range target.Specifications {
			if got, ok := c.Specifications[key]; ok && want.Matches(got) {
				matching++
			}
		}
		score := float64(matching) / float64(len(target.Specifications))
		if score <= specSimilarityCutoff {
			continue
		}
		similar = append(similar, domain.RelatedProduct{
			Product:         *c,
			SimilarityScore: score,
		})
	}
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].SimilarityScore > similar[j].SimilarityScore
	})
	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar
}

// PersonalizedRecommendations ranks the featured, in-stock part of the
// catalog for a user. Until per-user profiles exist every user sees the same
// ranking; the user id is carried for logging and future use.
func (e *Engine) PersonalizedRecommendations(ctx context.Context, userID string, limit int) []domain.PersonalizedProduct {
	if limit <= 0 {
		limit = defaultPersonalizedLimit
	}
	recommendations := make([]domain.PersonalizedProduct, 0, limit)

	products, err := e.catalog.ListActiveProducts(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "personalized: catalog lookup failed",
			slog.String("user_id", userID), slog.Any("error", err))
		return recommendations
	}

	pool := make([]domain.Product, 0, len(products))
	for i := range products {
		if products[i].Inventory.InStock && products[i].IsFeatured {
			pool = append(pool, products[i])
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Rating.Average != pool[j].Rating.Average {
			return pool[i].Rating.Average > pool[j].Rating.Average
		}
		return pool[i].CreatedAt.After(pool[j].CreatedAt)
	})
	if len(pool) > personalizedPool {
		pool = pool[:personalizedPool]
	}

	now := time.Now()
	for i := range pool {
		p := &pool[i]
		score := p.Rating.Average * persRatingWeight
		if p.IsFeatured {
			score += persFeaturedBonus
		}
		if p.Pricing.OnSale {
			score += persSaleBonus
		}
		if p.Inventory.InStock {
			score += persStockBonus
		}
		if now.Sub(p.CreatedAt) <= recentWindow {
			score += persRecentBonus
		}
		recommendations = append(recommendations, domain.PersonalizedProduct{
			Product:             *p,
			RecommendationScore: score,
			RecommendationType:  domain.RecommendationPersonalized,
		})
	}
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].RecommendationScore > recommendations[j].RecommendationScore
	})
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations
}

// CategoryRecommendations returns the best in-stock products of a category,
// highest rated first with featured products breaking ties. When the category
// runs short, products spill over from the most similar categories according
// to the advisory category weights.
func (e *Engine) CategoryRecommendations(ctx context.Context, categoryID string, limit int) []domain.Product {
	if limit <= 0 {
		limit = defaultCategoryLimit
	}
	out := make([]domain.Product, 0, limit)

	out = e.appendCategoryPicks(ctx, out, categoryID, limit)
	if len(out) < limit {
		for _, relatedID := range e.currentWeights().relatedTo(categoryID) {
			if len(out) == limit {
				break
			}
			out = e.appendCategoryPicks(ctx, out, relatedID, limit)
		}
	}
	return out
}

func (e *Engine) appendCategoryPicks(ctx context.Context, out []domain.Product, categoryID string, limit int) []domain.Product {
	products, err := e.catalog.ListActiveProductsByCategory(ctx, categoryID)
	if err != nil {
		e.logger.ErrorContext(ctx, "category recommendations: lookup failed",
			slog.String("category_id", categoryID), slog.Any("error", err))
		return out
	}

	picks := make([]domain.Product, 0, len(products))
	for i := range products {
		if products[i].Inventory.InStock {
			picks = append(picks, products[i])
		}
	}
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Rating.Average != picks[j].Rating.Average {
			return picks[i].Rating.Average > picks[j].Rating.Average
		}
		return picks[i].IsFeatured && !picks[j].IsFeatured
	})

	for i := range picks {
		if len(out) == limit {
			break
		}
		out = append(out, picks[i])
	}
	return out
}

// productSimilarity is the overall similarity of two products: price
// closeness, specification agreement, shared brand, and tag overlap.
func productSimilarity(a, b *domain.Product) float64 {
	s := simWeightPrice*priceRatio(a, b) +
		simWeightSpecs*specOverlap(a, b) +
		simWeightTags*tagOverlap(a.Tags, b.Tags)
	if a.Brand != "" && strings.EqualFold(a.Brand, b.Brand) {
		s += simWeightBrand
	}
	return s
}

// priceRatio is the smaller effective price divided by the larger, or zero
// when either product has no positive price.
func priceRatio(a, b *domain.Product) float64 {
	pa, pb := a.EffectivePrice(), b.EffectivePrice()
	if pa <= 0 || pb <= 0 {
		return 0
	}
	if pa > pb {
		pa, pb = pb, pa
	}
	return pa / pb
}

// specOverlap is the fraction of shared specification keys whose values are
// strictly equal.
func specOverlap(a, b *domain.Product) float64 {
	shared, matching := 0, 0
	for key, va := range a.Specifications {
		vb, ok := b.Specifications[key]
		if !ok {
			continue
		}
		shared++
		if va.Equal(vb) {
			matching++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(matching) / float64(shared)
}

// tagOverlap is the number of shared tags divided by the size of the larger
// tag set, case-insensitively.
func tagOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[strings.ToLower(t)] = struct{}{}
	}
	shared := 0
	for _, t := range b {
		if _, ok := set[strings.ToLower(t)]; ok {
			shared++
		}
	}
	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(shared) / float64(larger)
}

// complementaryTagsFor derives the complementary tag set for a product from
// the keyword rules, matching keywords against the product's tags and its
// English name.
func (e *Engine) complementaryTagsFor(p *domain.Product) map[string]struct{} {
	out := make(map[string]struct{})
	name := strings.ToLower(p.Name.Get("en"))
	for keyword, tags := range e.complementaryTags {
		hit := strings.Contains(name, keyword)
		if !hit {
			for _, t := range p.Tags {
				if strings.Contains(strings.ToLower(t), keyword) {
					hit = true
					break
				}
			}
		}
		if !hit {
			continue
		}
		for _, t := range tags {
			out[t] = struct{}{}
		}
	}
	return out
}

func tagsIntersect(tags []string, set map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := set[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
