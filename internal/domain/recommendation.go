package domain

// Recommendation type constants.
const (
	RecommendationTrending      = "trending"
	RecommendationCategoryBased = "category-based"
	RecommendationPersonalized  = "personalized"
)

// RelatedProduct is a product scored by overall similarity to a target.
type RelatedProduct struct {
	Product         `json:"product"`
	SimilarityScore float64 `json:"similarity_score"`
}

// ComplementaryProduct is a product scored by how well it complements a
// target ("frequently bought together").
type ComplementaryProduct struct {
	Product            `json:"product"`
	ComplementaryScore float64 `json:"complementary_score"`
}

// PersonalizedProduct is a product carrying a personalization ranking score.
type PersonalizedProduct struct {
	Product             `json:"product"`
	RecommendationScore float64 `json:"recommendation_score"`
	RecommendationType  string  `json:"recommendation_type"`
}

// BundleSavingsRate is the flat discount applied to every bundle.
const BundleSavingsRate = 0.05

// Bundle is a priced grouping of an anchor product with one or more
// complementary products, sold at a flat discount.
type Bundle struct {
	Anchor        Product   `json:"anchor"`
	Complementary []Product `json:"complementary"`
	TotalPrice    float64   `json:"total_price"`
	Savings       float64   `json:"savings"`
	BundleType    string    `json:"bundle_type"`
}
