package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var boms = [][]byte{{0xEF, 0xBB, 0xBF}, {0xFF, 0xFE}, {0xFE, 0xFF}}

// ExtractTXT reads data as text. Byte-order marks select UTF-8 or UTF-16;
// anything else that is not valid UTF-8 is read as Windows-1252, the usual
// encoding of French documents saved on Windows.
func ExtractTXT(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty file")
	}

	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}

	if text = cleanText(text); text == "" {
		return "", errors.New("no readable text")
	}
	return text, nil
}

func decodeText(data []byte) (string, error) {
	if !hasBOM(data) && utf8.Valid(data) {
		return string(data), nil
	}

	decoder := unicode.BOMOverride(charmap.Windows1252.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func hasBOM(data []byte) bool {
	for _, bom := range boms {
		if bytes.HasPrefix(data, bom) {
			return true
		}
	}
	return false
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "")

// cleanText normalizes line breaks and drops blank lines.
func cleanText(text string) string {
	var lines []string
	for line := range strings.Lines(lineBreaks.Replace(text)) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
