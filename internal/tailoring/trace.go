package tailoring

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

var metricRe = regexp.MustCompile(`\d+(?:[.,]\d+)?%?`)

// reconcile builds the final tailored profile from the original and the
// backend's proposal, enforcing the structural contract: contact, education,
// employers, titles and dates come from the original unconditionally; bullets
// pair up 1:1 by position; every rewritten bullet must pass the trace check or
// it reverts to the original text. Returns the result and one change record
// per bullet whose text differs from (or was reverted to) the original.
func reconcile(original, proposed *types.CandidateProfile) (*types.TailoredProfile, []types.BulletChange) {
	result := original.Clone()
	changes := []types.BulletChange{}

	// Role alignment is positional. A proposal that dropped, added or
	// reordered roles broke the in-place contract, so any role without a
	// positional counterpart keeps its original bullets untouched.
	for i := range result.Experience {
		if i >= len(proposed.Experience) {
			break
		}
		proposedRole := proposed.Experience[i]
		role := &result.Experience[i]

		for j := range role.Bullets {
			if j >= len(proposedRole.Bullets) {
				break
			}
			originalText := role.Bullets[j].Text
			proposedText := strings.TrimSpace(proposedRole.Bullets[j].Text)

			if proposedText == "" || proposedText == originalText {
				continue
			}

			if reason := traceFailure(originalText, proposedText); reason != "" {
				changes = append(changes, types.BulletChange{
					OriginalBullet: originalText,
					TailoredBullet: originalText,
					Rationale:      "reverted: " + reason,
				})
				continue
			}

			role.Bullets[j].Text = proposedText
			changes = append(changes, types.BulletChange{
				OriginalBullet: originalText,
				TailoredBullet: proposedText,
				Rationale:      "reworded for job relevance",
			})
		}
	}

	// Skills may be reordered or filtered by the proposal but never extended.
	if len(proposed.Skills) > 0 {
		allowed := make(map[string]bool, len(result.Skills))
		for _, skill := range result.Skills {
			allowed[strings.ToLower(skill)] = true
		}
		kept := make([]string, 0, len(proposed.Skills))
		seen := make(map[string]bool)
		for _, skill := range proposed.Skills {
			skill = strings.TrimSpace(skill)
			key := strings.ToLower(skill)
			if skill == "" || !allowed[key] || seen[key] {
				continue
			}
			seen[key] = true
			kept = append(kept, skill)
		}
		if len(kept) > 0 {
			result.Skills = kept
		}
	}

	// A reworded summary is acceptable when it introduces no new content
	// tokens; otherwise the original stands.
	proposedSummary := strings.TrimSpace(proposed.Summary)
	if proposedSummary != "" && proposedSummary != result.Summary {
		if traceFailure(result.Summary, proposedSummary) == "" {
			result.Summary = proposedSummary
		}
	}

	return &types.TailoredProfile{CandidateProfile: *result}, changes
}

// traceFailure checks that a rewritten bullet is still the same claim as the
// original. Returns an empty string when the rewrite is acceptable, otherwise
// a short reason. Two gates: the rewrite must share vocabulary with the
// original, and the numbers and metrics must be unchanged in both directions:
// every metric in the original survives verbatim, and the rewrite introduces
// none of its own.
func traceFailure(original, rewritten string) string {
	origTokens := contentTokenSet(original)
	rewTokens := contentTokenSet(rewritten)

	overlap := 0
	for tok := range rewTokens {
		if origTokens[tok] {
			overlap++
		}
	}
	if len(origTokens) > 0 && overlap == 0 {
		return "no token overlap with the original bullet"
	}

	for _, metric := range metricRe.FindAllString(original, -1) {
		if !strings.Contains(rewritten, metric) {
			return "metric " + metric + " from the original is missing"
		}
	}

	for _, metric := range metricRe.FindAllString(rewritten, -1) {
		if !strings.Contains(original, metric) {
			return "metric " + metric + " does not appear in the original"
		}
	}

	return ""
}

func contentTokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if len(tok) >= 3 {
			set[tok] = true
		}
	}
	return set
}

func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
