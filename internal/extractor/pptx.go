package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// ExtractPPTX returns the text of every slide, in slide order, one paragraph per line.
func ExtractPPTX(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PPTX as ZIP: %w", err)
	}

	type slideFile struct {
		index int
		file  *zip.File
	}

	var slides []slideFile
	for _, file := range zipReader.File {
		m := slidePattern.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		index, _ := strconv.Atoi(m[1])
		slides = append(slides, slideFile{index: index, file: file})
	}

	if len(slides) == 0 {
		return "", fmt.Errorf("no slides found in PPTX")
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].index < slides[j].index })

	var textBuilder strings.Builder
	for _, slide := range slides {
		text, err := slideText(slide.file)
		if err != nil {
			return "", fmt.Errorf("slide %d: %w", slide.index, err)
		}
		textBuilder.WriteString(text)
	}

	extractedText := strings.TrimSpace(textBuilder.String())

	if extractedText == "" {
		return "", fmt.Errorf("no text could be extracted from PPTX")
	}

	return extractedText, nil
}

// slideText collects <a:t> runs, breaking lines at </a:p>.
func slideText(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var textBuilder strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			inText = t.Name.Local == "t"
		case xml.EndElement:
			if t.Name.Local == "p" {
				textBuilder.WriteString("\n")
			}
			inText = false
		case xml.CharData:
			if inText {
				textBuilder.Write(t)
			}
		}
	}

	return textBuilder.String(), nil
}
