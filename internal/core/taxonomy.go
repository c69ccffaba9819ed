package core

import "strings"

// PredefinedCategories is the starting category set. Users may extend it
// with free text; extensions are deduplicated case-insensitively against
// whatever already exists.
var PredefinedCategories = []string{
	"Grocery",
	"Transport",
	"Bills",
	"Entertainment",
	"Eating Out",
	"Health",
	"Shopping",
	"Others",
}

// NormalizeCategory trims a user-supplied category name and collapses
// internal runs of whitespace to single spaces.
func NormalizeCategory(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ResolveCategory dedupes a candidate category against the existing set,
// case-insensitively. It returns the canonical spelling to use and whether
// the candidate is new. An empty candidate resolves to Uncategorized.
func ResolveCategory(existing []string, candidate string) (canonical string, isNew bool) {
	candidate = NormalizeCategory(candidate)
	if candidate == "" {
		return Uncategorized, false
	}
	for _, have := range existing {
		if strings.EqualFold(have, candidate) {
			return have, false
		}
	}
	return candidate, true
}
