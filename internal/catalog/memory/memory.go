package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/utafrali/catalog-engine/internal/domain"
	apperrors "github.com/utafrali/catalog-engine/pkg/errors"
)

// CatalogReader is an in-memory implementation of catalog.Reader, used for
// local development and tests. Thread-safe via sync.RWMutex.
type CatalogReader struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories map[string]domain.Category
}

// New creates an empty in-memory catalog reader.
func New() *CatalogReader {
	return &CatalogReader{
		products:   make(map[string]domain.Product),
		categories: make(map[string]domain.Category),
	}
}

// PutProduct adds or replaces a product.
func (r *CatalogReader) PutProduct(p domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// PutCategory adds or replaces a category.
func (r *CatalogReader) PutCategory(c domain.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
}

// ListActiveProducts returns every active product, newest first.
func (r *CatalogReader) ListActiveProducts(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.IsActive {
			products = append(products, p)
		}
	}
	sortNewestFirst(products)
	return products, nil
}

// ListActiveProductsByCategory returns every active product in a category.
func (r *CatalogReader) ListActiveProductsByCategory(_ context.Context, categoryID string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0)
	for _, p := range r.products {
		if p.IsActive && p.CategoryID == categoryID {
			products = append(products, p)
		}
	}
	sortNewestFirst(products)
	return products, nil
}

// SearchActiveProducts returns active products whose localized name or
// description, SKU, or any tag contains the substring, case-insensitively.
func (r *CatalogReader) SearchActiveProducts(_ context.Context, substring string, categoryID *string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub := strings.ToLower(substring)

	products := make([]domain.Product, 0)
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if categoryID != nil && *categoryID != "" && p.CategoryID != *categoryID {
			continue
		}
		if matchesSubstring(p, sub) {
			products = append(products, p)
		}
	}
	sortNewestFirst(products)
	return products, nil
}

// FindProductByID returns a product by id.
func (r *CatalogReader) FindProductByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

// ListActiveCategories returns every active category ordered by sort order.
func (r *CatalogReader) ListActiveCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.IsActive {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})
	return categories, nil
}

// FindCategoryByID returns a category by id.
func (r *CatalogReader) FindCategoryByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

// CountActiveProductsByCategory returns the number of active products per
// category id.
func (r *CatalogReader) CountActiveProductsByCategory(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range r.products {
		if p.IsActive {
			counts[p.CategoryID]++
		}
	}
	return counts, nil
}

func matchesSubstring(p domain.Product, sub string) bool {
	if p.Name.Contains(sub) || p.Description.Contains(sub) {
		return true
	}
	if strings.Contains(strings.ToLower(p.SKU), sub) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), sub) {
			return true
		}
	}
	return false
}

func sortNewestFirst(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}
