package extraction

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractHTMLFile extracts visible text from an HTML resume export.
func extractHTMLFile(path string) (RawDocumentText, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return RawDocumentText{}, &FailedError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	text, err := ExtractHTMLText(string(content))
	if err != nil {
		return RawDocumentText{}, &FailedError{
			Path:    path,
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	return RawDocumentText{
		Text:    text,
		Backend: BackendHTML,
	}, nil
}

// ExtractHTMLText parses HTML and returns the visible body text. Noise
// elements are removed and list items are prefixed with a bullet marker so
// the normalizer can still distinguish bullet boundaries.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, nav, footer").Remove()

	// Mark list items so their boundaries survive text flattening.
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.SetText("- " + strings.TrimSpace(s.Text()))
	})

	body := doc.Find("body")
	var text string
	if body.Length() > 0 {
		text = body.Text()
	} else {
		text = doc.Text()
	}

	// Drop blank-only lines; real whitespace normalization happens later.
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n"), nil
}
