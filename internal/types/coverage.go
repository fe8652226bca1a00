//nolint:revive // types is a standard Go package name pattern
package types

// CoverageReport describes keyword alignment between job requirements and a
// tailored profile. The three slices are disjoint, sorted sets of lowercased
// keywords: Matched were found whole, NeedsConfirmation matched only at stem
// level, Missing matched at no threshold.
type CoverageReport struct {
	Matched           []string `json:"matched"`
	Missing           []string `json:"missing"`
	NeedsConfirmation []string `json:"needs_confirmation"`
}
