package crisis

import (
	"strings"

	"go-crisiswatch/types"
)

// Keyword buckets checked in order; first match wins.
var (
	disasterKeywords = []string{"disaster", "flood", "earthquake", "fire", "cyclone", "tsunami"}
	diseaseKeywords  = []string{"disease", "epidemic", "virus", "outbreak", "health"}
)

// CanonicalType maps a free-text type label onto the fixed taxonomy.
// Unmatched or empty labels become TypeOthers.
func CanonicalType(label string) types.IssueType {
	t := strings.ToLower(label)
	if t == "" {
		return types.TypeOthers
	}
	for _, kw := range disasterKeywords {
		if strings.Contains(t, kw) {
			return types.TypeDisaster
		}
	}
	for _, kw := range diseaseKeywords {
		if strings.Contains(t, kw) {
			return types.TypeDisease
		}
	}
	return types.TypeOthers
}
