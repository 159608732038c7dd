package services

import (
	"regexp"
	"sort"
	"strings"

	"photogigs-server/models"

	"golang.org/x/exp/slices"
)

// supportedRegions is the closed set of areas the marketplace operates in,
// keyed by lowercase two-letter state code.
var supportedRegions = map[string][]string{
	"tx": {"austin", "dallas", "houston", "san antonio"},
	"ca": {"los angeles", "san francisco", "san diego", "sacramento"},
	"ny": {"new york", "brooklyn", "buffalo"},
	"wa": {"seattle", "tacoma", "spokane"},
	"fl": {"miami", "orlando", "tampa"},
	"il": {"chicago"},
	"co": {"denver", "boulder"},
	"ga": {"atlanta"},
	"or": {"portland"},
	"tn": {"nashville", "memphis"},
}

var stateNames = map[string]string{
	"tx": "texas",
	"ca": "california",
	"ny": "new york",
	"wa": "washington",
	"fl": "florida",
	"il": "illinois",
	"co": "colorado",
	"ga": "georgia",
	"or": "oregon",
	"tn": "tennessee",
}

// MatchRegion maps a free-text (city, state) pair to a supported region.
// Matching is case-insensitive; the returned values are the lowercased
// inputs, not display names, because stored region documents and the exact
// match queries built on them are all lowercase. A miss is a valid outcome,
// not an error.
func MatchRegion(city, state string) (models.Region, bool) {
	if strings.TrimSpace(city) == "" || strings.TrimSpace(state) == "" {
		return models.Region{}, false
	}

	c := strings.ToLower(strings.TrimSpace(city))
	s := strings.ToLower(strings.TrimSpace(state))

	cities, ok := supportedRegions[s]
	if !ok || !slices.Contains(cities, c) {
		return models.Region{}, false
	}
	return models.Region{City: c, State: s}, true
}

// StateNamePattern builds an anchored regex pattern matching either the
// two-letter code or the full state name, used with the "i" option so any
// casing matches. Unknown states fall back to an exact pattern on the input.
func StateNamePattern(state string) string {
	s := strings.ToLower(strings.TrimSpace(state))
	if len(s) != 2 {
		for abbrev, full := range stateNames {
			if full == s {
				s = abbrev
				break
			}
		}
	}
	full, ok := stateNames[s]
	if !ok {
		return "^" + regexp.QuoteMeta(s) + "$"
	}
	return "^(" + regexp.QuoteMeta(s) + "|" + regexp.QuoteMeta(full) + ")$"
}

// SupportedRegions lists every supported (city, state) pair, ordered by state
// then city, for the region picker endpoint.
func SupportedRegions() []models.Region {
	states := make([]string, 0, len(supportedRegions))
	for s := range supportedRegions {
		states = append(states, s)
	}
	sort.Strings(states)

	var regions []models.Region
	for _, s := range states {
		cities := append([]string(nil), supportedRegions[s]...)
		sort.Strings(cities)
		for _, c := range cities {
			regions = append(regions, models.Region{City: c, State: s})
		}
	}
	return regions
}
