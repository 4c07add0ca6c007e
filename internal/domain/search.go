package domain

// Match type constants for search hits.
const (
	MatchDirect = "direct"
	MatchFuzzy  = "fuzzy"
)

// Sort options for search results.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// ValidSortOptions returns the list of valid sort options.
func ValidSortOptions() []string {
	return []string{SortRelevance, SortPriceLow, SortPriceHigh, SortRating, SortNewest}
}

// IsValidSort checks whether the given sort string is a valid sort option.
func IsValidSort(sort string) bool {
	for _, s := range ValidSortOptions() {
		if s == sort {
			return true
		}
	}
	return false
}

// DefaultMinScore is the relevance cutoff applied when none is given.
const DefaultMinScore = 0.3

// SearchOptions holds all parameters for a search request.
type SearchOptions struct {
	Limit              int      `json:"limit"`
	CategoryID         *string  `json:"category_id,omitempty"`
	MinScore           *float64 `json:"min_score,omitempty"`
	IncludeSuggestions *bool    `json:"include_suggestions,omitempty"`
	SortBy             string   `json:"sort_by"`
}

// SearchHit is a product matched by a search query, together with its
// relevance score and how it matched.
type SearchHit struct {
	Product     `json:"product"`
	SearchScore float64 `json:"search_score"`
	MatchType   string  `json:"match_type"`
}

// SearchResult holds the full search response. Error is set (and Results
// left empty) when the catalog could not be queried; search never propagates
// that failure as a Go error to the caller.
type SearchResult struct {
	Query        string       `json:"query"`
	Results      []SearchHit  `json:"results"`
	Suggestions  []Suggestion `json:"suggestions,omitempty"`
	TotalFound   int          `json:"total_found"`
	SearchTimeMs int64        `json:"search_time_ms"`
	Error        string       `json:"error,omitempty"`
}

// Suggestion kinds.
const (
	SuggestionCategory   = "category"
	SuggestionProduct    = "product"
	SuggestionCorrection = "correction"
)

// Suggestion is an autocomplete / "did you mean" entry.
type Suggestion struct {
	Kind   string  `json:"kind"`
	Text   string  `json:"text"`
	RefID  string  `json:"ref_id,omitempty"`
	Weight float64 `json:"weight"`
}

// TrendingCategory is one entry of the trending-searches response: a category
// joined with the number of active products it holds.
type TrendingCategory struct {
	CategoryID   string        `json:"category_id"`
	Name         LocalizedText `json:"name"`
	ProductCount int           `json:"product_count"`
}
