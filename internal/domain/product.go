package domain

import (
	"time"
)

// Pricing holds the price information for a product. Prices are stored in
// major currency units.
type Pricing struct {
	OriginalPrice   float64 `json:"original_price"`
	SalePrice       float64 `json:"sale_price,omitempty"`
	OnSale          bool    `json:"on_sale"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	Currency        string  `json:"currency"`
}

// Inventory holds the stock information for a product.
type Inventory struct {
	InStock           bool `json:"in_stock"`
	Quantity          int  `json:"quantity"`
	LowStockThreshold int  `json:"low_stock_threshold"`
}

// Rating holds the aggregated review rating for a product.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Product represents a catalog product. Inactive products are excluded from
// all search and recommendation results.
type Product struct {
	ID             string               `json:"id"`
	SKU            string               `json:"sku"`
	Name           LocalizedText        `json:"name"`
	Description    LocalizedText        `json:"description"`
	CategoryID     string               `json:"category_id"`
	Brand          string               `json:"brand,omitempty"`
	Tags           []string             `json:"tags,omitempty"`
	Specifications map[string]SpecValue `json:"specifications,omitempty"`
	Pricing        Pricing              `json:"pricing"`
	Inventory      Inventory            `json:"inventory"`
	Rating         Rating               `json:"rating"`
	IsFeatured     bool                 `json:"is_featured"`
	IsActive       bool                 `json:"is_active"`
	CreatedAt      time.Time            `json:"created_at"`
}

// EffectivePrice returns the sale price when the product is on sale with a
// positive sale price, otherwise the original price.
func (p *Product) EffectivePrice() float64 {
	if p.Pricing.OnSale && p.Pricing.SalePrice > 0 {
		return p.Pricing.SalePrice
	}
	return p.Pricing.OriginalPrice
}

// Category represents a product category.
type Category struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description,omitempty"`
	IsActive    bool          `json:"is_active"`
	SortOrder   int           `json:"sort_order"`
}
