package tagwire

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// Generate sends a prompt to the model and returns the raw response text.
func Generate(ctx context.Context, model llms.Model, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, model, prompt)
}

// ResponseText concatenates the text parts of a model response into the raw
// string the parser consumes. Non-text parts (images, tool calls made through
// native APIs) are ignored; this protocol only speaks in text.
func ResponseText(resp *llms.ContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, choice := range resp.Choices {
		if choice == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(choice.Content)
	}
	return sb.String()
}
