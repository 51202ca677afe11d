package rag

import (
	"fmt"
	"strings"
)

// previewLength is how much of a result's text is surfaced in a citation.
const previewLength = 200

// AssembleContext turns a ranked result list into the numbered context block
// injected into the system prompt, plus the structured source citations
// returned to the caller. Results are already similarity-sorted by the index;
// order is preserved. An empty list yields an empty block and no sources,
// which signals the orchestrator to take the no-context path.
func AssembleContext(results []RankedResult) (string, []Source) {
	if len(results) == 0 {
		return "", nil
	}

	var block strings.Builder
	sources := make([]Source, len(results))

	for i, result := range results {
		if i > 0 {
			block.WriteString("\n")
		}
		fmt.Fprintf(&block, "[%d] %s (Type: %s, Relevance: %.2f)",
			i+1, result.ContentText, result.ContentType, result.Similarity)

		source := Source{
			Id:          result.Id.String(),
			ContentType: result.ContentType,
			Similarity:  result.Similarity,
			Preview:     preview(result.ContentText),
		}
		if result.ContentId != nil {
			source.ContentId = result.ContentId.String()
		}
		sources[i] = source
	}

	return block.String(), sources
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text + "..."
	}
	return string(runes[:previewLength]) + "..."
}
