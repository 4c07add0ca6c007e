package engine

import (
	"sort"

	"github.com/utafrali/catalog-engine/internal/domain"
)

// categoryWeights is an advisory snapshot of cross-category affinity derived
// from pairwise product similarity. Category recommendations use it to pick
// spillover categories when the target category runs short. It is refreshed
// together with the token index.
type categoryWeights struct {
	related    map[string][]string
	popularity map[string]float64
}

func emptyCategoryWeights() *categoryWeights {
	return &categoryWeights{
		related:    map[string][]string{},
		popularity: map[string]float64{},
	}
}

// relatedTo returns the categories most similar to the given one, strongest
// first.
func (w *categoryWeights) relatedTo(categoryID string) []string {
	return w.related[categoryID]
}

func buildCategoryWeights(products []domain.Product) *categoryWeights {
	affinity := make(map[string]map[string]float64)

	add := func(from, to string, s float64) {
		m, ok := affinity[from]
		if !ok {
			m = make(map[string]float64)
			affinity[from] = m
		}
		m[to] += s
	}

	for i := range products {
		for j := i + 1; j < len(products); j++ {
			a, b := &products[i], &products[j]
			if a.CategoryID == "" || b.CategoryID == "" || a.CategoryID == b.CategoryID {
				continue
			}
			s := productSimilarity(a, b)
			if s <= 0 {
				continue
			}
			add(a.CategoryID, b.CategoryID, s)
			add(b.CategoryID, a.CategoryID, s)
		}
	}

	w := &categoryWeights{
		related:    make(map[string][]string, len(affinity)),
		popularity: make(map[string]float64, len(affinity)),
	}
	for from, m := range affinity {
		ids := make([]string, 0, len(m))
		var total float64
		for to, s := range m {
			ids = append(ids, to)
			total += s
		}
		sort.Slice(ids, func(i, j int) bool {
			if m[ids[i]] != m[ids[j]] {
				return m[ids[i]] > m[ids[j]]
			}
			return ids[i] < ids[j]
		})
		w.related[from] = ids
		w.popularity[from] = total
	}
	return w
}
