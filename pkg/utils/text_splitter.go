package utils

// Defaults for chunking long content before embedding.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with 'overlap' characters shared between adjacent chunks, so
// sentences straddling a boundary stay retrievable. Character-based; callers
// that need token-exact budgets must account for that themselves.
func SplitText(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
