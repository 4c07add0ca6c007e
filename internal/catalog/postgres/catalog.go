package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/catalog-engine/internal/domain"
	"github.com/utafrali/catalog-engine/pkg/database"
	apperrors "github.com/utafrali/catalog-engine/pkg/errors"
)

// productColumns is the standard SELECT column list for products.
const productColumns = `id, sku, name, description, category_id, brand, tags, specifications,
	original_price, sale_price, on_sale, discount_percent, currency,
	in_stock, quantity, low_stock_threshold,
	rating_average, rating_count, is_featured, is_active, created_at`

// CatalogReader implements catalog.Reader backed by PostgreSQL. Localized
// name/description and specifications are stored as JSONB, tags as text[].
type CatalogReader struct {
	pool database.DBTX
}

// NewCatalogReader creates a new PostgreSQL-backed catalog reader.
func NewCatalogReader(pool database.DBTX) *CatalogReader {
	return &CatalogReader{pool: pool}
}

// ListActiveProducts returns every active product.
func (r *CatalogReader) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE is_active ORDER BY created_at DESC`, productColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListActiveProductsByCategory returns every active product in a category.
func (r *CatalogReader) ListActiveProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE is_active AND category_id = $1 ORDER BY created_at DESC`, productColumns)

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// SearchActiveProducts returns active products whose localized name or
// description, SKU, or any tag contains the substring, case-insensitively.
func (r *CatalogReader) SearchActiveProducts(ctx context.Context, substring string, categoryID *string) ([]domain.Product, error) {
	pattern := "%" + substring + "%"

	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE is_active
		  AND (
			EXISTS (SELECT 1 FROM jsonb_each_text(name) n WHERE n.value ILIKE $1)
			OR EXISTS (SELECT 1 FROM jsonb_each_text(description) d WHERE d.value ILIKE $1)
			OR sku ILIKE $1
			OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE $1)
		  )`, productColumns)

	args := []any{pattern}
	if categoryID != nil && *categoryID != "" {
		query += ` AND category_id = $2`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search active products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// FindProductByID returns a product by id.
func (r *CatalogReader) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// ListActiveCategories returns every active category ordered by sort order.
func (r *CatalogReader) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, description, is_active, sort_order
		FROM categories
		WHERE is_active
		ORDER BY sort_order ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// FindCategoryByID returns a category by id.
func (r *CatalogReader) FindCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, name, description, is_active, sort_order
		FROM categories
		WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// CountActiveProductsByCategory returns the number of active products per
// category id.
func (r *CatalogReader) CountActiveProductsByCategory(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT category_id, count(*)
		FROM products
		WHERE is_active
		GROUP BY category_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count products by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			categoryID string
			count      int
		)
		if err := rows.Scan(&categoryID, &count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[categoryID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}

	return counts, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p         domain.Product
		nameJSON  []byte
		descJSON  []byte
		specsJSON []byte
	)

	if err := row.Scan(
		&p.ID,
		&p.SKU,
		&nameJSON,
		&descJSON,
		&p.CategoryID,
		&p.Brand,
		&p.Tags,
		&specsJSON,
		&p.Pricing.OriginalPrice,
		&p.Pricing.SalePrice,
		&p.Pricing.OnSale,
		&p.Pricing.DiscountPercent,
		&p.Pricing.Currency,
		&p.Inventory.InStock,
		&p.Inventory.Quantity,
		&p.Inventory.LowStockThreshold,
		&p.Rating.Average,
		&p.Rating.Count,
		&p.IsFeatured,
		&p.IsActive,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	if nameJSON != nil {
		if err := json.Unmarshal(nameJSON, &p.Name); err != nil {
			return nil, fmt.Errorf("unmarshal name: %w", err)
		}
	}
	if descJSON != nil {
		if err := json.Unmarshal(descJSON, &p.Description); err != nil {
			return nil, fmt.Errorf("unmarshal description: %w", err)
		}
	}
	if specsJSON != nil {
		if err := json.Unmarshal(specsJSON, &p.Specifications); err != nil {
			return nil, fmt.Errorf("unmarshal specifications: %w", err)
		}
	}

	return &p, nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var (
		c        domain.Category
		nameJSON []byte
		descJSON []byte
	)

	if err := row.Scan(
		&c.ID,
		&nameJSON,
		&descJSON,
		&c.IsActive,
		&c.SortOrder,
	); err != nil {
		return nil, err
	}

	if nameJSON != nil {
		if err := json.Unmarshal(nameJSON, &c.Name); err != nil {
			return nil, fmt.Errorf("unmarshal name: %w", err)
		}
	}
	if descJSON != nil {
		if err := json.Unmarshal(descJSON, &c.Description); err != nil {
			return nil, fmt.Errorf("unmarshal description: %w", err)
		}
	}

	return &c, nil
}
