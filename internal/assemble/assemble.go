// Package assemble renders a tailored profile into a LaTeX document using one
// of the bundled templates. Every string from the profile passes through
// EscapeLaTeX before it reaches a template; templates never see raw input.
package assemble

import (
	"embed"
	"sort"
	"strings"
	"text/template"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Bundled template identifiers.
const (
	TemplateModern  = "modern"
	TemplateClassic = "classic"
)

//go:embed templates/*.tex.tmpl
var templateFS embed.FS

var templateFiles = map[string]string{
	TemplateModern:  "templates/modern.tex.tmpl",
	TemplateClassic: "templates/classic.tex.tmpl",
}

// Templates returns the available template identifiers, sorted.
func Templates() []string {
	ids := make([]string, 0, len(templateFiles))
	for id := range templateFiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TemplateData represents the data structure passed to a LaTeX template.
// Every field is already escaped.
type TemplateData struct {
	Name       string
	Email      string
	Phone      string
	Location   string
	Summary    string
	Skills     []string
	Experience []ExperienceSection
	Education  []EducationSection
}

// ExperienceSection is one role with its formatted date range and bullets.
type ExperienceSection struct {
	Employer string
	Title    string
	Dates    string
	Bullets  []string
}

// EducationSection is one education entry.
type EducationSection struct {
	Institution string
	Degree      string
	Dates       string
}

// Assemble renders profile into a complete LaTeX document. Fails with
// *UnknownTemplateError when templateID names no bundled template and
// *TemplateError when the template itself cannot be executed.
func Assemble(profile *types.TailoredProfile, templateID string) (string, error) {
	file, ok := templateFiles[templateID]
	if !ok {
		return "", &UnknownTemplateError{TemplateID: templateID, Known: Templates()}
	}

	content, err := templateFS.ReadFile(file)
	if err != nil {
		return "", &TemplateError{Message: "failed to read bundled template " + templateID, Cause: err}
	}

	tmpl, err := template.New(templateID).Parse(string(content))
	if err != nil {
		return "", &TemplateError{Message: "failed to parse template " + templateID, Cause: err}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, buildTemplateData(profile)); err != nil {
		return "", &TemplateError{Message: "failed to execute template " + templateID, Cause: err}
	}

	return out.String(), nil
}

// buildTemplateData escapes every profile field into the template shape.
func buildTemplateData(profile *types.TailoredProfile) *TemplateData {
	data := &TemplateData{
		Name:     EscapeLaTeX(profile.Contact.Name),
		Email:    EscapeLaTeX(profile.Contact.Email),
		Phone:    EscapeLaTeX(profile.Contact.Phone),
		Location: EscapeLaTeX(profile.Contact.Location),
		Summary:  EscapeLaTeX(profile.Summary),
	}

	for _, skill := range profile.Skills {
		data.Skills = append(data.Skills, EscapeLaTeX(skill))
	}

	for _, exp := range profile.Experience {
		section := ExperienceSection{
			Employer: EscapeLaTeX(exp.Employer),
			Title:    EscapeLaTeX(exp.Title),
			Dates:    formatDates(exp.Start, exp.End),
		}
		for _, bullet := range exp.Bullets {
			section.Bullets = append(section.Bullets, EscapeLaTeX(bullet.Text))
		}
		data.Experience = append(data.Experience, section)
	}

	for _, edu := range profile.Education {
		data.Education = append(data.Education, EducationSection{
			Institution: EscapeLaTeX(edu.Institution),
			Degree:      EscapeLaTeX(edu.Degree),
			Dates:       EscapeLaTeX(edu.Dates),
		})
	}

	return data
}

// formatDates joins a start/end pair into the display range. An open end
// renders as Present; a missing start leaves just the end.
func formatDates(start, end string) string {
	start = EscapeLaTeX(strings.TrimSpace(start))
	end = EscapeLaTeX(strings.TrimSpace(end))

	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start + " -- Present"
	default:
		return start + " -- " + end
	}
}
