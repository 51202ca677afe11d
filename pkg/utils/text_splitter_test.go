package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 20)

	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitTextChunkingWithOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := SplitText(text, 40, 10)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 40)
	}

	// Adjacent chunks share the overlap region.
	assert.Equal(t, chunks[0][30:], chunks[1][:10])

	// Nothing is lost: the last chunk ends where the text ends.
	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 20)

	// Degenerate overlap falls back to non-overlapping chunks instead of looping.
	assert.Equal(t, 5, len(chunks))
}
