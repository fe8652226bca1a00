package profile

import (
	"regexp"
	"strings"
)

// GroundingTokenRatio is the fraction of a value's content tokens that must
// appear in the source text for the value to count as grounded when it is
// not a direct substring. The right tolerance here is a judgment call; keep
// it a package variable so it can be tuned without touching the check.
var GroundingTokenRatio = 0.7

var spaceRe = regexp.MustCompile(`\s+`)

// GroundedIn reports whether value is traceable to source: either a direct
// case-insensitive substring (after whitespace collapsing), or enough of its
// content tokens appear in the source. Empty values are trivially grounded.
func GroundedIn(value, source string) bool {
	v := collapseSpace(strings.ToLower(value))
	if v == "" {
		return true
	}
	s := collapseSpace(strings.ToLower(source))

	if strings.Contains(s, v) {
		return true
	}

	valueTokens := contentTokens(value)
	if len(valueTokens) == 0 {
		return true
	}

	sourceSet := make(map[string]bool)
	for _, tok := range tokenize(source) {
		sourceSet[tok] = true
	}

	matched := 0
	for _, tok := range valueTokens {
		if sourceSet[tok] {
			matched++
		}
	}

	return float64(matched) >= GroundingTokenRatio*float64(len(valueTokens))
}

// tokenize splits text into lowercase tokens. '%' stays attached to tokens
// so metrics like "30%" survive as a unit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '%':
			return false
		case r >= 'A' && r <= 'Z':
			return false
		default:
			return true
		}
	})
}

// contentTokens filters tokens down to those that carry meaning for a
// grounding decision: anything with a digit, or at least three characters.
func contentTokens(text string) []string {
	tokens := tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) >= 3 || strings.ContainsAny(tok, "0123456789") {
			out = append(out, tok)
		}
	}
	return out
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
