package port

import "context"

// TextExtractor converts a PDF payload into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
