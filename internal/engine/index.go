package engine

import (
	"strings"
	"time"

	"github.com/utafrali/catalog-engine/internal/domain"
)

// Index is an immutable token index over the catalog. It is rebuilt
// wholesale and swapped atomically; readers never observe a half-built index.
type Index struct {
	builtAt    time.Time
	products   map[string][]string
	categories map[string][]string
}

// emptyIndex is what the engine falls back to when no build has succeeded
// yet; all lookups simply miss and the query paths re-consult the catalog.
func emptyIndex() *Index {
	return &Index{
		builtAt:    time.Time{},
		products:   map[string][]string{},
		categories: map[string][]string{},
	}
}

// ProductTokens returns the indexed tokens for a product id, or nil.
func (ix *Index) ProductTokens(id string) []string {
	return ix.products[id]
}

// CategoryTokens returns the indexed tokens for a category id, or nil.
func (ix *Index) CategoryTokens(id string) []string {
	return ix.categories[id]
}

// Size returns the number of indexed products.
func (ix *Index) Size() int {
	return len(ix.products)
}

// buildIndex derives the token index from catalog snapshots.
func buildIndex(products []domain.Product, categories []domain.Category) *Index {
	ix := &Index{
		builtAt:    time.Now().UTC(),
		products:   make(map[string][]string, len(products)),
		categories: make(map[string][]string, len(categories)),
	}

	for i := range products {
		ix.products[products[i].ID] = productTokens(&products[i])
	}
	for i := range categories {
		c := &categories[i]
		tokens := tokenizeAll(append(c.Name.Values(), c.Description.Values()...))
		ix.categories[c.ID] = tokens
	}

	return ix
}

// productTokens extracts the flat lowercase token set for one product: every
// language variant of name and description, the SKU, every tag, and every
// scalar (or one-level-nested scalar) specification value. Absent fields
// simply contribute no tokens.
func productTokens(p *domain.Product) []string {
	var texts []string
	texts = append(texts, p.Name.Values()...)
	texts = append(texts, p.Description.Values()...)
	if p.SKU != "" {
		texts = append(texts, p.SKU)
	}
	texts = append(texts, p.Tags...)
	for _, v := range p.Specifications {
		texts = append(texts, v.ScalarStrings()...)
	}
	return tokenizeAll(texts)
}

// tokenizeAll lowercases and word-splits all texts, deduplicating tokens
// while preserving first-seen order.
func tokenizeAll(texts []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, t := range texts {
		for _, w := range strings.Fields(strings.ToLower(t)) {
			w = strings.Trim(w, ".,;:!?()[]\"'")
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			tokens = append(tokens, w)
		}
	}
	return tokens
}
