package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalog-engine/internal/domain"
)

var errCatalogDown = errors.New("catalog down")

// failingReader simulates a catalog backend outage.
type failingReader struct{}

func (failingReader) ListActiveProducts(context.Context) ([]domain.Product, error) {
	return nil, errCatalogDown
}

func (failingReader) ListActiveProductsByCategory(context.Context, string) ([]domain.Product, error) {
	return nil, errCatalogDown
}

func (failingReader) SearchActiveProducts(context.Context, string, *string) ([]domain.Product, error) {
	return nil, errCatalogDown
}

func (failingReader) FindProductByID(context.Context, string) (*domain.Product, error) {
	return nil, errCatalogDown
}

func (failingReader) ListActiveCategories(context.Context) ([]domain.Category, error) {
	return nil, errCatalogDown
}

func (failingReader) FindCategoryByID(context.Context, string) (*domain.Category, error) {
	return nil, errCatalogDown
}

func (failingReader) CountActiveProductsByCategory(context.Context) (map[string]int, error) {
	return nil, errCatalogDown
}

func TestSearch_DirectMatch(t *testing.T) {
	ctx := context.Background()
	p := testProduct("p1", "Ceramic Basin", "ceramics")
	eng, _ := newTestEngine(t, []domain.Product{p}, nil)

	result := eng.Search(ctx, "basin", domain.SearchOptions{})

	require.Len(t, result.Results, 1)
	assert.Equal(t, "p1", result.Results[0].ID)
	assert.Equal(t, domain.MatchDirect, result.Results[0].MatchType)
	assert.Equal(t, 1, result.TotalFound)
	assert.Empty(t, result.Error)
}

func TestSearch_FuzzyTypo(t *testing.T) {
	ctx := context.Background()
	p := testProduct("p1", "Ceramic Basin", "ceramics")
	eng, _ := newTestEngine(t, []domain.Product{p}, nil)
	require.NoError(t, eng.Rebuild(ctx))

	result := eng.Search(ctx, "basn", domain.SearchOptions{})

	require.Len(t, result.Results, 1)
	assert.Equal(t, "p1", result.Results[0].ID)
	assert.Equal(t, domain.MatchFuzzy, result.Results[0].MatchType)
	// "basn" -> "basin" is one edit over a four-rune query.
	assert.InDelta(t, 0.75, result.Results[0].SearchScore, 1e-9)
}

func TestSearch_FuzzyWorksBeforeFirstRebuild(t *testing.T) {
	ctx := context.Background()
	p := testProduct("p1", "Chrome Faucet", "bathroom-fittings")
	eng, _ := newTestEngine(t, []domain.Product{p}, nil)

	// No Rebuild: products are tokenized inline when the index is cold.
	result := eng.Search(ctx, "faucte", domain.SearchOptions{})

	require.Len(t, result.Results, 1)
	assert.Equal(t, domain.MatchFuzzy, result.Results[0].MatchType)
}

func TestSearch_EmptyQuery(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, []domain.Product{testProduct("p1", "Basin", "ceramics")}, nil)

	result := eng.Search(ctx, "   ", domain.SearchOptions{})

	assert.Empty(t, result.Results)
	assert.Zero(t, result.TotalFound)
	assert.Empty(t, result.Error)
}

func TestSearch_RelevanceOrdering(t *testing.T) {
	ctx := context.Background()
	leading := testProduct("p1", "Basin Pro", "ceramics")
	leading.Description = domain.LocalizedText{"en": "white"}
	inner := testProduct("p2", "Ceramic Basin", "ceramics")
	inner.Description = domain.LocalizedText{"en": "white"}
	eng, _ := newTestEngine(t, []domain.Product{leading, inner}, nil)

	result := eng.Search(ctx, "basin", domain.SearchOptions{})

	require.Len(t, result.Results, 2)
	assert.Equal(t, "p1", result.Results[0].ID, "name-leading match outranks inner match")
	assert.Equal(t, "p2", result.Results[1].ID)
	assert.Greater(t, result.Results[0].SearchScore, result.Results[1].SearchScore)
}

func TestSearch_NoDuplicateAcrossPhases(t *testing.T) {
	ctx := context.Background()
	p := testProduct("p1", "Ceramic Basin", "ceramics")
	eng, _ := newTestEngine(t, []domain.Product{p}, nil)
	require.NoError(t, eng.Rebuild(ctx))

	// Direct hit leaves room under the limit, so the fuzzy phase runs too;
	// the product must not appear twice.
	result := eng.Search(ctx, "basin", domain.SearchOptions{Limit: 10})

	require.Len(t, result.Results, 1)
	assert.Equal(t, domain.MatchDirect, result.Results[0].MatchType)
}

func TestSearch_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	basin := testProduct("p1", "Ceramic Basin", "ceramics")
	faucetBasin := testProduct("p2", "Basin Faucet", "bathroom-fittings")
	eng, _ := newTestEngine(t, []domain.Product{basin, faucetBasin}, nil)

	categoryID := "ceramics"
	result := eng.Search(ctx, "basin", domain.SearchOptions{CategoryID: &categoryID})

	require.Len(t, result.Results, 1)
	assert.Equal(t, "p1", result.Results[0].ID)
}

func TestSearch_ExcludesInactive(t *testing.T) {
	ctx := context.Background()
	inactive := testProduct("p1", "Ceramic Basin", "ceramics")
	inactive.IsActive = false
	eng, _ := newTestEngine(t, []domain.Product{inactive}, nil)

	result := eng.Search(ctx, "basin", domain.SearchOptions{})

	assert.Empty(t, result.Results)
}

func TestSearch_SortPriceLow(t *testing.T) {
	ctx := context.Background()
	cheap := testProduct("p1", "Basin Eco", "ceramics")
	cheap.Pricing.OriginalPrice = 50
	pricey := testProduct("p2", "Basin Lux", "ceramics")
	pricey.Pricing.OriginalPrice = 300
	onSale := testProduct("p3", "Basin Mid", "ceramics")
	onSale.Pricing = domain.Pricing{OriginalPrice: 200, SalePrice: 40, OnSale: true, Currency: "USD"}
	eng, _ := newTestEngine(t, []domain.Product{cheap, pricey, onSale}, nil)

	result := eng.Search(ctx, "basin", domain.SearchOptions{SortBy: domain.SortPriceLow})

	require.Len(t, result.Results, 3)
	assert.Equal(t, "p3", result.Results[0].ID, "sale price is the effective price")
	assert.Equal(t, "p1", result.Results[1].ID)
	assert.Equal(t, "p2", result.Results[2].ID)
}

func TestSearch_LimitTruncatesButCountsAll(t *testing.T) {
	ctx := context.Background()
	products := []domain.Product{
		testProduct("p1", "Basin One", "ceramics"),
		testProduct("p2", "Basin Two", "ceramics"),
		testProduct("p3", "Basin Three", "ceramics"),
	}
	eng, _ := newTestEngine(t, products, nil)

	result := eng.Search(ctx, "basin", domain.SearchOptions{Limit: 2})

	assert.Len(t, result.Results, 2)
	assert.Equal(t, 3, result.TotalFound)
}

func TestSearch_MinScoreFiltersFuzzy(t *testing.T) {
	ctx := context.Background()
	p := testProduct("p1", "Ceramic Basin", "ceramics")
	eng, _ := newTestEngine(t, []domain.Product{p}, nil)
	require.NoError(t, eng.Rebuild(ctx))

	minScore := 0.8
	result := eng.Search(ctx, "basn", domain.SearchOptions{MinScore: &minScore})

	assert.Empty(t, result.Results, "0.75 fuzzy score is below the 0.8 cutoff")
}

func TestSearch_CatalogFailureDegrades(t *testing.T) {
	ctx := context.Background()
	eng := New(failingReader{}, newTestLogger())

	result := eng.Search(ctx, "basin", domain.SearchOptions{})

	assert.Empty(t, result.Results)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, "basin", result.Query)
}

func TestSearch_SuggestionsToggle(t *testing.T) {
	ctx := context.Background()
	p := testProduct("p1", "Ceramic Basin", "ceramics")
	eng, _ := newTestEngine(t, []domain.Product{p}, []domain.Category{testCategory("ceramics", "Ceramics")})

	withSuggestions := eng.Search(ctx, "basin", domain.SearchOptions{})
	assert.NotEmpty(t, withSuggestions.Suggestions, "suggestions are included by default")

	off := false
	without := eng.Search(ctx, "basin", domain.SearchOptions{IncludeSuggestions: &off})
	assert.Empty(t, without.Suggestions)
}
