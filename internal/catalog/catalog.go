package catalog

import (
	"context"

	"github.com/utafrali/catalog-engine/internal/domain"
)

// Reader supplies the engine with read-only snapshots of catalog data. The
// engine never writes back through this interface.
type Reader interface {
	// ListActiveProducts returns every active product.
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)

	// ListActiveProductsByCategory returns every active product in a category.
	ListActiveProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)

	// SearchActiveProducts returns active products whose name or description
	// (any language), SKU, or tags contain the given substring,
	// case-insensitively, optionally constrained to a category.
	SearchActiveProducts(ctx context.Context, substring string, categoryID *string) ([]domain.Product, error)

	// FindProductByID returns a product by id, or errors.ErrNotFound.
	FindProductByID(ctx context.Context, id string) (*domain.Product, error)

	// ListActiveCategories returns every active category ordered by sort order.
	ListActiveCategories(ctx context.Context) ([]domain.Category, error)

	// FindCategoryByID returns a category by id, or errors.ErrNotFound.
	FindCategoryByID(ctx context.Context, id string) (*domain.Category, error)

	// CountActiveProductsByCategory returns the number of active products per
	// category id.
	CountActiveProductsByCategory(ctx context.Context) (map[string]int, error)
}
