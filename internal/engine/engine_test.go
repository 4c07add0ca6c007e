package engine

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/utafrali/catalog-engine/internal/catalog/memory"
	"github.com/utafrali/catalog-engine/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, products []domain.Product, categories []domain.Category) (*Engine, *memory.CatalogReader) {
	t.Helper()
	reader := memory.New()
	for _, p := range products {
		reader.PutProduct(p)
	}
	for _, c := range categories {
		reader.PutCategory(c)
	}
	return New(reader, newTestLogger()), reader
}

// testProduct returns an active, in-stock product with sensible defaults that
// individual tests override.
func testProduct(id, name, categoryID string) domain.Product {
	return domain.Product{
		ID:          id,
		SKU:         "SKU-" + id,
		Name:        domain.LocalizedText{"en": name},
		Description: domain.LocalizedText{"en": name + " description"},
		CategoryID:  categoryID,
		Tags:        []string{},
		Pricing:     domain.Pricing{OriginalPrice: 100, Currency: "USD"},
		Inventory:   domain.Inventory{InStock: true, Quantity: 10},
		Rating:      domain.Rating{Average: 4.0, Count: 12},
		IsActive:    true,
		CreatedAt:   time.Now().Add(-90 * 24 * time.Hour),
	}
}

func testCategory(id, name string) domain.Category {
	return domain.Category{
		ID:       id,
		Name:     domain.LocalizedText{"en": name},
		IsActive: true,
	}
}
