package engine

// Static domain tables for suggestion corrections and complementary-product
// lookups. These are configuration, not learned data; they cover the sanitary
// ware assortment the catalog carries.

// defaultCorrections maps a canonical term to its domain synonyms. If a query
// is a substring of the key or any value, the other values in the entry are
// offered as correction suggestions.
var defaultCorrections = map[string][]string{
	"faucet": {"faucet", "tap", "mixer"},
	"basin":  {"basin", "sink", "washbasin"},
	"toilet": {"toilet", "wc", "water closet"},
	"shower": {"shower", "shower head", "rain shower"},
	"heater": {"heater", "water heater", "boiler"},
	"vanity": {"vanity", "cabinet", "bathroom furniture"},
}

// defaultComplementaryCategories maps a category id to the categories whose
// products are typically bought alongside it.
var defaultComplementaryCategories = map[string][]string{
	"bathroom-fittings": {"accessories", "ceramics", "furniture"},
	"ceramics":          {"bathroom-fittings", "accessories", "furniture"},
	"furniture":         {"ceramics", "accessories"},
	"accessories":       {"bathroom-fittings", "ceramics"},
	"kitchen-fittings":  {"accessories", "ceramics"},
	"water-heaters":     {"bathroom-fittings", "accessories"},
}

// defaultComplementaryTags maps a product keyword (matched against the
// target's tags and name) to the tags of products that complement it.
var defaultComplementaryTags = map[string][]string{
	"basin":   {"faucet", "mixer", "tap"},
	"sink":    {"faucet", "mixer", "tap"},
	"faucet":  {"basin", "sink"},
	"mixer":   {"basin", "sink"},
	"tap":     {"basin", "sink"},
	"bathtub": {"shower", "accessories"},
	"toilet":  {"seat", "accessories"},
}
