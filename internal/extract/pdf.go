// Package extract converts PDF payloads into plain text.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"paperbridge/internal/domain"
	"paperbridge/internal/port"
)

// PDFExtractor implements port.TextExtractor using a pure-Go PDF reader.
type PDFExtractor struct{}

var _ port.TextExtractor = (*PDFExtractor)(nil)

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the plain text of all readable pages, joined with blank
// lines. Unreadable or empty pages are skipped. Empty input and documents
// with no extractable text are extraction failures.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf payload: %w", domain.ErrExtractionFailed)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w: %v", domain.ErrExtractionFailed, err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("extraction canceled: %w: %v", domain.ErrExtractionFailed, err)
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}

		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(pageText)
	}

	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", fmt.Errorf("no extractable text: %w", domain.ErrExtractionFailed)
	}
	return out, nil
}
