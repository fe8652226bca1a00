// Package normalize converts raw extracted document text into a single
// canonical plain-text representation suitable for prompting. It is
// deterministic and makes no external calls.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-tailor/internal/extraction"
)

// DefaultMinLength is the minimum normalized text length below which a
// document is treated as having no extractable text (image-only or scanned
// PDFs typically land here).
const DefaultMinLength = 120

// EmptyDocumentError reports that normalization produced too little text to
// proceed. This is a user-facing, non-fatal condition: the caller should ask
// for a different document, not crash.
type EmptyDocumentError struct {
	Length    int
	Threshold int
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("document contains no usable text (%d chars after normalization, need at least %d); it may be a scanned or image-only document", e.Length, e.Threshold)
}

// Normalizer cleans raw extracted text. The zero value is not usable; use New.
type Normalizer struct {
	// MinLength is the empty-document threshold in characters.
	MinLength int
}

// New returns a Normalizer with default settings.
func New() *Normalizer {
	return &Normalizer{MinLength: DefaultMinLength}
}

var (
	pageNumberRe = regexp.MustCompile(`(?i)^(page\s+\d+(\s+of\s+\d+)?|-?\s*\d+\s*-?)$`)
	innerSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// bulletGlyphs are common PDF bullet characters normalized to "- " so bullet
// boundaries survive into the prompt.
var bulletGlyphs = []string{"•", "◦", "▪", "‣", "·", "*"}

// Normalize converts raw document text into canonical plain text. It returns
// an *EmptyDocumentError when the result is below the minimum length.
func (n *Normalizer) Normalize(raw extraction.RawDocumentText) (string, error) {
	text := strings.ReplaceAll(raw.Text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Form feeds mark page boundaries in multi-page PDF extractions.
	pages := strings.Split(text, "\f")
	if len(pages) > 2 {
		pages = stripRepeatedEdgeLines(pages)
	}

	var lines []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			lines = append(lines, cleanLine(line))
		}
	}

	// Drop page-number artifacts left over from extraction.
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if pageNumberRe.MatchString(strings.TrimSpace(line)) {
			continue
		}
		kept = append(kept, line)
	}

	result := strings.Join(kept, "\n")
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	result = strings.TrimSpace(result)

	threshold := n.MinLength
	if threshold <= 0 {
		threshold = DefaultMinLength
	}
	if len(result) < threshold {
		return "", &EmptyDocumentError{Length: len(result), Threshold: threshold}
	}

	return result, nil
}

// cleanLine normalizes a single line while preserving bullet boundaries and
// leading indentation.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph+" ") || trimmed == glyph {
			trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, glyph))
			break
		}
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	content := innerSpaceRe.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// stripRepeatedEdgeLines removes per-page headers and footers: a line that
// appears as the first (or last) non-blank line on most pages of a multi-page
// document is an extraction artifact, not content.
func stripRepeatedEdgeLines(pages []string) []string {
	firstCounts := make(map[string]int)
	lastCounts := make(map[string]int)

	for _, page := range pages {
		first, last := edgeLines(page)
		if first != "" {
			firstCounts[first]++
		}
		if last != "" {
			lastCounts[last]++
		}
	}

	// "Most pages" = strictly more than half.
	majority := len(pages)/2 + 1

	result := make([]string, 0, len(pages))
	for _, page := range pages {
		lines := strings.Split(page, "\n")
		out := make([]string, 0, len(lines))
		first, last := edgeLines(page)
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && trimmed == first && firstCounts[first] >= majority {
				first = "" // remove only the first occurrence per page
				continue
			}
			out = append(out, line)
		}
		if last != "" && lastCounts[last] >= majority {
			for i := len(out) - 1; i >= 0; i-- {
				if strings.TrimSpace(out[i]) == last {
					out = append(out[:i], out[i+1:]...)
					break
				}
			}
		}
		result = append(result, strings.Join(out, "\n"))
	}

	return result
}

// edgeLines returns the first and last non-blank trimmed lines of a page.
func edgeLines(page string) (first, last string) {
	for _, line := range strings.Split(page, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if first == "" {
			first = trimmed
		}
		last = trimmed
	}
	return first, last
}
