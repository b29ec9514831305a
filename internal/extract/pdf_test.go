package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"paperbridge/internal/domain"
	"paperbridge/internal/extract"
)

func TestPDFExtractor_EmptyInput(t *testing.T) {
	_, err := extract.NewPDFExtractor().Extract(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestPDFExtractor_NotAPDF(t *testing.T) {
	_, err := extract.NewPDFExtractor().Extract(context.Background(), []byte("plain text, not a pdf"))

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestPDFExtractor_TruncatedPDF(t *testing.T) {
	_, err := extract.NewPDFExtractor().Extract(context.Background(), []byte("%PDF-1.4\n1 0 obj"))

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
