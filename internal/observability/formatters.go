// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/profile"
	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the extracted profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Contact.Name))
	if profile.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Contact.Email))
	}
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		skills := strings.Join(profile.Skills, ", ")
		if len(skills) > 50 {
			skills = skills[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", skills))
	}
	sb.WriteString(fmt.Sprintf("Roles:    %d\n", len(profile.Experience)))
	sb.WriteString(fmt.Sprintf("Bullets:  %d\n", profile.BulletCount()))
	sb.WriteString(fmt.Sprintf("Education entries: %d", len(profile.Education)))

	p.printBox("EXTRACTED PROFILE", sb.String())
}

// PrintRequirements outputs the analyzed job requirements.
func (p *Printer) PrintRequirements(reqs *types.JobRequirements) {
	if reqs == nil {
		return
	}

	var sb strings.Builder

	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}

	writeList("Required", reqs.RequiredSkills)
	writeList("Preferred", reqs.PreferredSkills)
	sb.WriteString(fmt.Sprintf("Keywords: %d", len(reqs.Keywords)))

	p.printBox("JOB REQUIREMENTS", sb.String())
}

// PrintCoverage outputs the keyword coverage report.
func (p *Printer) PrintCoverage(report *types.CoverageReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched: %d   Missing: %d   Needs confirmation: %d\n",
		len(report.Matched), len(report.Missing), len(report.NeedsConfirmation)))

	writeList := func(symbol string, items []string) {
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("%s %s\n", symbol, items[i]))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}

	if len(report.Missing) > 0 {
		sb.WriteString("\n")
		writeList("✗", report.Missing)
	}
	if len(report.NeedsConfirmation) > 0 {
		sb.WriteString("\n")
		writeList("?", report.NeedsConfirmation)
	}

	p.printBox("KEYWORD COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiff outputs the tailoring change log.
func (p *Printer) PrintDiff(diff *types.TailoringDiff) {
	if diff == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Bullet rewrites: %d\n\n", len(diff.Changes)))

	count := min(len(diff.Changes), maxItemsToShow)
	for i := 0; i < count; i++ {
		change := diff.Changes[i]
		text := change.TailoredBullet
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", text))
		if change.Rationale != "" {
			sb.WriteString(fmt.Sprintf("  [%s]\n", change.Rationale))
		}
	}
	if len(diff.Changes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(diff.Changes)-maxItemsToShow))
	}

	if len(diff.MissingOrUnconfirmed) > 0 {
		sb.WriteString(fmt.Sprintf("\nNot addressed (no evidence): %s",
			strings.Join(diff.MissingOrUnconfirmed, ", ")))
	}

	p.printBox("TAILORING CHANGES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDropped outputs the facts removed by grounding or validation.
func (p *Printer) PrintDropped(dropped []profile.DroppedFact) {
	if len(dropped) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Dropped %d ungrounded facts:\n\n", len(dropped)))

	count := min(len(dropped), maxItemsToShow)
	for i := 0; i < count; i++ {
		fact := dropped[i]
		value := fact.Value
		if len(value) > 40 {
			value = value[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s: %s\n", fact.Field, value))
		sb.WriteString(fmt.Sprintf("  %s\n", fact.Reason))
	}
	if len(dropped) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(dropped)-maxItemsToShow))
	}

	p.printBox("UNGROUNDED FACTS REMOVED", strings.TrimSuffix(sb.String(), "\n"))
}
