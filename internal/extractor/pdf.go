package extractor

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF returns the plain text of the document's pages. When limit is
// positive, pages stop being read once limit characters are collected.
func ExtractPDF(data []byte, limit int) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		// Unreadable pages are skipped.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")

		if limit > 0 && utf8.RuneCountInString(sb.String()) >= limit {
			break
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text in PDF")
	}
	return text, nil
}
