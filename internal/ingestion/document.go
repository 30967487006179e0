// Package ingestion turns uploaded documents and job-posting URLs into clean
// text for the analysis pipeline.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// UnsupportedFormatError is returned for document types the extractor cannot
// read. It is terminal for the request; no text can be produced.
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q for %s", e.Extension, e.Filename)
}

// ExtractText extracts raw text from an uploaded document. PDF and plain-text
// formats (.txt, .md) are supported; anything else fails with
// UnsupportedFormatError. The result is raw text only, no structured fields.
func ExtractText(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return extractPDFText(data, filename)
	case ".txt", ".md":
		return decodePlainText(data), nil
	default:
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
}

func extractPDFText(data []byte, filename string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", filename, err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep what earlier pages produced
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		plain, err := reader.GetPlainText()
		if err != nil {
			return "", fmt.Errorf("failed to extract text from PDF %s: %w", filename, err)
		}
		extracted, err := io.ReadAll(plain)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF text from %s: %w", filename, err)
		}
		return string(extracted), nil
	}

	return sb.String(), nil
}

// decodePlainText interprets bytes as UTF-8, falling back to Latin-1 when the
// content is not valid UTF-8.
func decodePlainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
