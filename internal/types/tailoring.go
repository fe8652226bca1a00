//nolint:revive // types is a standard Go package name pattern
package types

// TailoredProfile has the same shape as CandidateProfile, with bullet text
// possibly reworded. Invariants enforced by the tailoring engine:
//   - every bullet is reducible to exactly one original bullet (1:1 rewrite)
//   - Skills is a subset of the original profile's skills
//   - no employer, title, date or metric differs from the original
type TailoredProfile struct {
	CandidateProfile
}

// BulletChange records one original-to-tailored bullet rewrite. When the
// tailored text could not be traced back to the original it is reverted and
// the rationale says so.
type BulletChange struct {
	OriginalBullet string `json:"original_bullet"`
	TailoredBullet string `json:"tailored_bullet"`
	Rationale      string `json:"rationale,omitempty"`
}

// TailoringDiff is the machine-checkable record of what the tailoring engine
// did. MissingOrUnconfirmed lists requirement keywords that no bullet or
// skill in the profile could substantiate; those are never silently added to
// the resume.
type TailoringDiff struct {
	Changes              []BulletChange `json:"changes"`
	MissingOrUnconfirmed []string       `json:"missing_or_unconfirmed"`
}
