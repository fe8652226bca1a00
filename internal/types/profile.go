// Package types provides type definitions for the structured data passed
// through the resume tailoring pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Contact holds candidate contact information. Every field is optional:
// anything not found in the source document stays empty, it is never guessed.
type Contact struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Bullet is a single experience bullet. Evidence is an optional excerpt from
// the source text supporting the claim; it is advisory only, since the grounding
// check in the extractor is the authoritative gate.
type Bullet struct {
	Text     string `json:"text"`
	Evidence string `json:"evidence,omitempty"`
}

// Experience is one role in the work history. Order of the containing slice
// is preserved from the source document (most-recent-first assumed).
type Experience struct {
	Employer string   `json:"employer"`
	Title    string   `json:"title"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Bullets  []Bullet `json:"bullets"`
}

// Education is one education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Dates       string `json:"dates,omitempty"`
}

// CandidateProfile is the canonical structured resume produced by the
// extractor. Invariant: every atomic fact in this structure appears, verbatim
// or as a trivial paraphrase, in the originating document text.
type CandidateProfile struct {
	Contact    Contact      `json:"contact"`
	Summary    string       `json:"summary,omitempty"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// Clone returns a deep copy of the profile. Pipeline stages never mutate
// their inputs; anything that needs a modified profile works on a clone.
func (p *CandidateProfile) Clone() *CandidateProfile {
	if p == nil {
		return nil
	}

	out := &CandidateProfile{
		Contact: p.Contact,
		Summary: p.Summary,
	}

	if p.Skills != nil {
		out.Skills = make([]string, len(p.Skills))
		copy(out.Skills, p.Skills)
	}

	if p.Experience != nil {
		out.Experience = make([]Experience, len(p.Experience))
		for i, exp := range p.Experience {
			copied := exp
			if exp.Bullets != nil {
				copied.Bullets = make([]Bullet, len(exp.Bullets))
				copy(copied.Bullets, exp.Bullets)
			}
			out.Experience[i] = copied
		}
	}

	if p.Education != nil {
		out.Education = make([]Education, len(p.Education))
		copy(out.Education, p.Education)
	}

	return out
}

// BulletCount returns the total number of experience bullets in the profile.
func (p *CandidateProfile) BulletCount() int {
	count := 0
	for _, exp := range p.Experience {
		count += len(exp.Bullets)
	}
	return count
}
