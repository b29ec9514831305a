// Package llm holds the prompt for the metadata suggestion client.
package llm

// maxPromptChars caps how much document text is sent to the completion API.
const maxPromptChars = 12000

// BuildSuggestionPrompt returns the metadata suggestion prompt for the given
// document text.
func BuildSuggestionPrompt(text string) string {
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	return `You are an archival assistant. Read the document text below and suggest metadata for filing it.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation - just the raw JSON object with these keys:
{
  "title": "a short descriptive title",
  "tags": ["up to five lowercase tags"],
  "summary": "one or two sentences summarizing the document"
}

Document text:
` + text
}
