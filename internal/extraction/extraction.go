// Package extraction converts resume documents (PDF, HTML, plain text) into
// raw text with a provenance tag. A failing or low-quality primary PDF
// strategy falls back to a secondary one; total failure is reported
// distinctly from a readable-but-empty document.
package extraction

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Backend identifiers recorded in RawDocumentText provenance.
const (
	BackendPDFText = "pdf-text"
	BackendPDFRows = "pdf-rows"
	BackendHTML    = "html"
	BackendPlain   = "plaintext"
)

// RawDocumentText is the output of a document extraction backend: plain text
// plus which backend produced it and whether that backend was the fallback.
// Consumed once by the normalizer.
type RawDocumentText struct {
	Text     string
	Backend  string
	Fallback bool
}

// ExtractDocument extracts raw text from the document at path, choosing the
// backend by file extension. PDF extraction tries the styled-text strategy
// first and falls back to row-ordered extraction when the primary fails or
// yields low-quality text.
func ExtractDocument(path string) (RawDocumentText, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return extractPDF(path)
	case ".html", ".htm":
		return extractHTMLFile(path)
	case ".txt", ".md", "":
		return extractPlainFile(path)
	default:
		return RawDocumentText{}, &FailedError{
			Path:    path,
			Message: fmt.Sprintf("unsupported document format %q", ext),
		}
	}
}

func extractPlainFile(path string) (RawDocumentText, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return RawDocumentText{}, &FailedError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	return RawDocumentText{
		Text:    string(content),
		Backend: BackendPlain,
	}, nil
}

// isLowQuality flags text that was technically extracted but is likely
// garbage (e.g. glyph soup from a scanned PDF). Heuristic: very few unique
// alphabetic words, or almost no text at all.
func isLowQuality(text string) bool {
	if len(text) < 100 {
		return true
	}

	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	alpha := 0
	unique := make(map[string]bool)
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		alpha++
		unique[strings.ToLower(w)] = true
	}

	if alpha == 0 {
		return true
	}
	return float64(len(unique))/float64(alpha) < 0.15
}
