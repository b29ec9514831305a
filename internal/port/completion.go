package port

import "context"

// SuggestOutput is the structured metadata suggested for an extracted text.
type SuggestOutput struct {
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

// Completion is the boundary to the LLM completion API.
type Completion interface {
	Suggest(ctx context.Context, text string) (*SuggestOutput, error)
}
