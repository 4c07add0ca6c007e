package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalog-engine/internal/cache"
	"github.com/utafrali/catalog-engine/internal/domain"
)

func TestGenerateSuggestions_CategoryFirst(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t,
		[]domain.Product{testProduct("p1", "Ceramic Basin", "ceramics")},
		[]domain.Category{testCategory("ceramics", "Ceramics")},
	)

	suggestions := eng.GenerateSuggestions(ctx, "ceram")

	require.NotEmpty(t, suggestions)
	assert.Equal(t, domain.SuggestionCategory, suggestions[0].Kind)
	assert.Equal(t, "Ceramics", suggestions[0].Text)
	assert.Equal(t, "ceramics", suggestions[0].RefID)
	assert.InDelta(t, 0.9, suggestions[0].Weight, 1e-9)
}

func TestGenerateSuggestions_ProductNames(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t,
		[]domain.Product{testProduct("p1", "Ceramic Basin", "ceramics")},
		nil,
	)

	suggestions := eng.GenerateSuggestions(ctx, "ceramic")

	require.NotEmpty(t, suggestions)
	var product *domain.Suggestion
	for i := range suggestions {
		if suggestions[i].Kind == domain.SuggestionProduct {
			product = &suggestions[i]
			break
		}
	}
	require.NotNil(t, product)
	assert.Equal(t, "Ceramic Basin", product.Text)
	assert.Equal(t, "p1", product.RefID)
	assert.InDelta(t, 0.8, product.Weight, 1e-9)
}

func TestGenerateSuggestions_Corrections(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, nil, nil)

	suggestions := eng.GenerateSuggestions(ctx, "tap")

	texts := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		assert.Equal(t, domain.SuggestionCorrection, s.Kind)
		assert.InDelta(t, 0.7, s.Weight, 1e-9)
		texts = append(texts, s.Text)
	}
	assert.ElementsMatch(t, []string{"faucet", "mixer"}, texts)
}

func TestGenerateSuggestions_CategoryMatchesIndexedDescription(t *testing.T) {
	ctx := context.Background()
	cat := testCategory("ceramics", "Ceramics")
	cat.Description = domain.LocalizedText{"en": "Basins and toilets"}
	eng, _ := newTestEngine(t, nil, []domain.Category{cat})
	require.NoError(t, eng.Rebuild(ctx))

	suggestions := eng.GenerateSuggestions(ctx, "toilet")

	var category *domain.Suggestion
	for i := range suggestions {
		if suggestions[i].Kind == domain.SuggestionCategory {
			category = &suggestions[i]
			break
		}
	}
	require.NotNil(t, category, "description tokens are matched once indexed")
	assert.Equal(t, "ceramics", category.RefID)
}

func TestGenerateSuggestions_ProductSourceCappedAtFive(t *testing.T) {
	ctx := context.Background()
	products := make([]domain.Product, 0, 7)
	for i := 0; i < 7; i++ {
		products = append(products, testProduct(
			fmt.Sprintf("p%d", i),
			fmt.Sprintf("Chrome Faucet %d", i),
			"bathroom-fittings",
		))
	}
	eng, _ := newTestEngine(t, products, nil)

	suggestions := eng.GenerateSuggestions(ctx, "faucet")

	productCount, correctionCount := 0, 0
	for _, s := range suggestions {
		switch s.Kind {
		case domain.SuggestionProduct:
			productCount++
		case domain.SuggestionCorrection:
			correctionCount++
		}
	}
	assert.Equal(t, 5, productCount, "product names stop at five")
	assert.Equal(t, 2, correctionCount, "corrections keep their slots")
	assert.Len(t, suggestions, 7)
}

func TestGenerateSuggestions_CapsAtEight(t *testing.T) {
	ctx := context.Background()
	categories := make([]domain.Category, 0, 10)
	for i := 0; i < 10; i++ {
		categories = append(categories, testCategory(
			fmt.Sprintf("cat-%d", i),
			fmt.Sprintf("Basin Collection %d", i),
		))
	}
	eng, _ := newTestEngine(t, nil, categories)

	suggestions := eng.GenerateSuggestions(ctx, "basin")

	assert.Len(t, suggestions, 8)
}

func TestGenerateSuggestions_EmptyQuery(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, nil, []domain.Category{testCategory("ceramics", "Ceramics")})

	assert.Empty(t, eng.GenerateSuggestions(ctx, "  "))
}

func TestAutocomplete_RequiresTwoCharacters(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, []domain.Product{testProduct("p1", "Ceramic Basin", "ceramics")}, nil)

	assert.Empty(t, eng.Autocomplete(ctx, "c", 10))
	assert.Empty(t, eng.Autocomplete(ctx, "", 10))
}

func TestAutocomplete_PrefixAnchored(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t,
		[]domain.Product{testProduct("p1", "Ceramic Basin", "ceramics")},
		nil,
	)

	completions := eng.Autocomplete(ctx, "ce", 10)

	assert.Equal(t, []string{"Ceramic Basin"}, completions)

	// "basin" appears inside the name but not as a prefix.
	assert.Empty(t, eng.Autocomplete(ctx, "asin", 10))
}

func TestAutocomplete_ProductNamesOnly(t *testing.T) {
	ctx := context.Background()
	p := testProduct("p1", "Ceramic Basin", "ceramics")
	p.Tags = []string{"chrome"}
	eng, _ := newTestEngine(t,
		[]domain.Product{p},
		[]domain.Category{testCategory("chrome-line", "Chrome Line")},
	)

	assert.Empty(t, eng.Autocomplete(ctx, "chr", 10),
		"tags and category names do not complete")
}

func TestTrendingSearches_OrdersByProductCount(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t,
		[]domain.Product{
			testProduct("p1", "Basin One", "ceramics"),
			testProduct("p2", "Basin Two", "ceramics"),
			testProduct("p3", "Chrome Faucet", "bathroom-fittings"),
		},
		[]domain.Category{
			testCategory("ceramics", "Ceramics"),
			testCategory("bathroom-fittings", "Bathroom Fittings"),
			testCategory("furniture", "Furniture"),
		},
	)

	trending := eng.TrendingSearches(ctx, 10)

	require.Len(t, trending, 2, "empty categories are omitted")
	assert.Equal(t, "ceramics", trending[0].CategoryID)
	assert.Equal(t, 2, trending[0].ProductCount)
	assert.Equal(t, "bathroom-fittings", trending[1].CategoryID)
}

func TestTrendingSearches_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t,
		[]domain.Product{testProduct("p1", "Basin One", "ceramics")},
		[]domain.Category{testCategory("ceramics", "Ceramics")},
	)
	eng.cache = cache.NewMemory()

	first := eng.TrendingSearches(ctx, 10)
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].ProductCount)

	// New catalog data does not show until the cache entry expires.
	store.PutProduct(testProduct("p2", "Basin Two", "ceramics"))
	second := eng.TrendingSearches(ctx, 10)
	require.Len(t, second, 1)
	assert.Equal(t, 1, second[0].ProductCount)
}
