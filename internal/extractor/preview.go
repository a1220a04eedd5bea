package extractor

import (
	"strings"

	"github.com/BerylCAtieno/opticours-api/internal/models"
)

// Preview returns at most limit characters of readable text from a course
// file. It is best effort: when the format-specific extractor fails the raw
// bytes are decoded as text, and an unreadable file yields "".
func Preview(data []byte, mimeType string, limit int) (preview string) {
	if limit <= 0 || len(data) == 0 {
		return ""
	}

	// The PDF reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			preview = ""
		}
	}()

	var (
		text string
		err  error
	)

	switch mimeType {
	case models.MimePDF:
		text, err = ExtractPDF(data, limit)
	case models.MimeDOCX:
		text, err = ExtractDOCX(data)
	case models.MimePPTX:
		text, err = ExtractPPTX(data)
	default:
		text, err = ExtractTXT(data)
	}

	if err != nil {
		text, err = ExtractTXT(data)
		if err != nil {
			return ""
		}
	}

	return truncate(strings.TrimSpace(text), limit)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
