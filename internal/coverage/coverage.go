// Package coverage scores a candidate profile against job requirements
// without any LLM involvement: deterministic token matching only, so the
// report is reproducible and cheap to recompute.
package coverage

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultMinStemLen is the shortest shared prefix that counts as a stem-level
// match. Below four characters prefixes collide too often ("java"/"javascript"
// is the kind of near-miss the needs-confirmation bucket exists for; "go"/"god"
// is not).
const DefaultMinStemLen = 4

// Matcher classifies requirement keywords against profile text.
type Matcher struct {
	// MinStemLen is the minimum shared prefix length for a stem match.
	MinStemLen int
}

// NewMatcher returns a Matcher with the default stem threshold.
func NewMatcher() *Matcher {
	return &Matcher{MinStemLen: DefaultMinStemLen}
}

// Report classifies every keyword in the requirement universe against the
// profile. Each keyword lands in exactly one bucket: matched when it appears
// whole in the profile, needs-confirmation when only a stem-level relative
// appears, missing otherwise. All three slices come back sorted.
func (m *Matcher) Report(reqs *types.JobRequirements, profile *types.CandidateProfile) *types.CoverageReport {
	report := &types.CoverageReport{
		Matched:           []string{},
		Missing:           []string{},
		NeedsConfirmation: []string{},
	}
	if reqs == nil || profile == nil {
		return report
	}

	text := profileText(profile)
	tokens := tokenSet(text)

	for _, keyword := range reqs.KeywordUniverse() {
		switch m.classify(keyword, text, tokens) {
		case matchWhole:
			report.Matched = append(report.Matched, keyword)
		case matchStem:
			report.NeedsConfirmation = append(report.NeedsConfirmation, keyword)
		default:
			report.Missing = append(report.Missing, keyword)
		}
	}

	sort.Strings(report.Matched)
	sort.Strings(report.Missing)
	sort.Strings(report.NeedsConfirmation)
	return report
}

type matchLevel int

const (
	matchNone matchLevel = iota
	matchStem
	matchWhole
)

func (m *Matcher) classify(keyword, text string, tokens map[string]bool) matchLevel {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return matchNone
	}

	// Multi-word keywords match as a phrase; single-word keywords must match
	// a whole token so "go" does not light up on "google".
	if strings.ContainsAny(keyword, " -/") {
		if strings.Contains(text, keyword) {
			return matchWhole
		}
	} else if tokens[keyword] {
		return matchWhole
	}

	minStem := m.MinStemLen
	if minStem <= 0 {
		minStem = DefaultMinStemLen
	}
	if len(keyword) < minStem {
		return matchNone
	}

	for _, part := range tokenize(keyword) {
		if len(part) < minStem {
			continue
		}
		for token := range tokens {
			if len(token) < minStem {
				continue
			}
			if strings.HasPrefix(token, part) || strings.HasPrefix(part, token) {
				return matchStem
			}
		}
	}
	return matchNone
}

// profileText flattens the fields a resume screen would read into one
// lowercased string.
func profileText(p *types.CandidateProfile) string {
	var b strings.Builder
	write := func(s string) {
		if s != "" {
			b.WriteString(strings.ToLower(s))
			b.WriteByte('\n')
		}
	}

	write(p.Summary)
	for _, skill := range p.Skills {
		write(skill)
	}
	for _, exp := range p.Experience {
		write(exp.Title)
		for _, bullet := range exp.Bullets {
			write(bullet.Text)
		}
	}
	for _, edu := range p.Education {
		write(edu.Degree)
	}
	return b.String()
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#':
			// '+' and '#' stay attached so "c++" and "c#" survive as tokens.
			return false
		default:
			return true
		}
	})
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenize(text) {
		set[tok] = true
	}
	return set
}
