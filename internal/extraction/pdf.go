package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF runs the primary styled-text strategy and falls back to
// row-ordered extraction when the primary fails or looks like garbage.
func extractPDF(path string) (RawDocumentText, error) {
	styled, styledErr := extractPDFStyled(path)
	if styledErr == nil && !isLowQuality(styled) {
		return RawDocumentText{
			Text:    styled,
			Backend: BackendPDFText,
		}, nil
	}

	rows, rowsErr := extractPDFRows(path)
	if rowsErr == nil && strings.TrimSpace(rows) != "" {
		return RawDocumentText{
			Text:     rows,
			Backend:  BackendPDFRows,
			Fallback: true,
		}, nil
	}

	// Primary extracted something, it just looked low quality. Hand it on
	// anyway; a genuinely empty document is the normalizer's call to reject.
	if styledErr == nil && strings.TrimSpace(styled) != "" {
		return RawDocumentText{
			Text:    styled,
			Backend: BackendPDFText,
		}, nil
	}

	cause := styledErr
	if cause == nil {
		cause = rowsErr
	}
	return RawDocumentText{}, &FailedError{
		Path:    path,
		Message: "no PDF extraction strategy produced text (encrypted or corrupt document?)",
		Cause:   cause,
	}
}

// extractPDFStyled extracts the document's full text in content order.
func extractPDFStyled(path string) (text string, err error) {
	// The pdf library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf text extraction panicked: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract plain text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("failed to read extracted text: %w", err)
	}

	return buf.String(), nil
}

// extractPDFRows extracts text page by page in row order. Slower, but it
// recovers line structure on documents where the styled strategy interleaves
// columns or drops spacing.
func extractPDFRows(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf row extraction panicked: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to extract rows from page %d: %w", pageNum, err)
		}

		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				if line.Len() > 0 {
					line.WriteString(" ")
				}
				line.WriteString(word.S)
			}
			if strings.TrimSpace(line.String()) != "" {
				sb.WriteString(line.String())
				sb.WriteString("\n")
			}
		}
		// Keep an explicit page boundary so the normalizer can spot
		// repeated headers and footers.
		sb.WriteString("\f")
	}

	return sb.String(), nil
}
