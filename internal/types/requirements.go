//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
)

// JobRequirements represents the skill and keyword demands extracted from a
// job description. The job text itself is the source of truth here, so no
// grounding constraint applies. RequiredSkills and PreferredSkills keep the
// original casing for display; Keywords are lowercased and deduplicated.
type JobRequirements struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Keywords        []string `json:"keywords"`
}

// KeywordUniverse returns the deduplicated, lowercased union of keywords and
// both skill lists, sorted for determinism. The tailoring engine and the
// coverage analyzer both score against this same set, which is what makes
// their missing/unconfirmed outputs reconcile.
func (r *JobRequirements) KeywordUniverse() []string {
	if r == nil {
		return nil
	}

	seen := make(map[string]bool)
	universe := make([]string, 0, len(r.Keywords)+len(r.RequiredSkills)+len(r.PreferredSkills))

	add := func(values []string) {
		for _, v := range values {
			normalized := strings.ToLower(strings.TrimSpace(v))
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			universe = append(universe, normalized)
		}
	}

	add(r.Keywords)
	add(r.RequiredSkills)
	add(r.PreferredSkills)

	sort.Strings(universe)
	return universe
}
