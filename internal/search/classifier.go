package search

import (
	"strings"

	"github.com/rkampati/carekb/internal/config"
)

// Classification says whether a query belongs to a restricted domain
// where the source authority hierarchy must hold.
type Classification struct {
	IsRestrictedDomain bool   `json:"is_restricted_domain"`
	Domain             string `json:"domain,omitempty"`
}

// Classify matches the lowercased query against the configured keyword
// sets. A query is restricted-domain or general, never both - domains
// are checked in config.RestrictedDomains order and the first match
// wins.
func Classify(query string) Classification {
	lower := strings.ToLower(query)
	for _, domain := range config.RestrictedDomains {
		for _, kw := range config.RestrictedDomainKeywords[domain] {
			if strings.Contains(lower, kw) {
				return Classification{IsRestrictedDomain: true, Domain: domain}
			}
		}
	}
	return Classification{}
}
