package config

// Keyword data for the classifier and scorer. Kept here as configuration
// rather than inline in the scoring code so the scorer stays testable and
// the physician team can review the lists in one place.

// RestrictedDomains fixes the evaluation order for classification and
// tagging. Map iteration order is random, so "first matching domain
// wins" only holds when matching walks this slice.
var RestrictedDomains = []string{
	"breastfeeding",
}

// RestrictedDomainKeywords maps a restricted domain to the query keywords
// that route it there. A query matching any keyword is tagged with that
// domain and the authority hierarchy is enforced during ranking.
var RestrictedDomainKeywords = map[string][]string{
	"breastfeeding": {
		"breastfeed",
		"breastfeeding",
		"nursing",
		"latch",
		"latching",
		"milk supply",
		"engorgement",
		"colostrum",
		"mastitis",
		"pumping",
		"nipple",
		"letdown",
		"weaning",
	},
}

// HighValuePhrases earn the exact-phrase bonus when present in both
// the query and a chunk.
var HighValuePhrases = []string{
	"golden hour",
	"milk supply",
	"skin to skin",
	"safe sleep",
	"red flag",
	"tummy time",
	"sleep regression",
	"growth spurt",
}

// DocumentCategories is the closed-ish taxonomy for uploads. Unknown
// categories fall back to "other" rather than being rejected.
var DocumentCategories = []string{
	"breastfeeding",
	"sleep",
	"postpartum",
	"safety",
	"other",
}

func KnownCategory(c string) bool {
	for _, k := range DocumentCategories {
		if k == c {
			return true
		}
	}
	return false
}
