package rag

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleContextEmpty(t *testing.T) {
	block, sources := AssembleContext(nil)

	assert.Empty(t, block)
	assert.Nil(t, sources)
}

func TestAssembleContextNumberingAndFormat(t *testing.T) {
	contentId := uuid.New()
	results := []RankedResult{
		{
			Id:          uuid.New(),
			ContentId:   &contentId,
			ContentType: ContentTypeLearningContent,
			ContentText: "Introduction to closures",
			Similarity:  0.923,
		},
		{
			Id:          uuid.New(),
			ContentType: ContentTypeSkill,
			ContentText: "JavaScript",
			Similarity:  0.851,
		},
	}

	block, sources := AssembleContext(results)

	lines := strings.Split(block, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[1] Introduction to closures (Type: learning_content, Relevance: 0.92)", lines[0])
	assert.Equal(t, "[2] JavaScript (Type: skill, Relevance: 0.85)", lines[1])

	require.Len(t, sources, 2)
	assert.Equal(t, results[0].Id.String(), sources[0].Id)
	assert.Equal(t, contentId.String(), sources[0].ContentId)
	assert.Empty(t, sources[1].ContentId)
	assert.Equal(t, 0.923, sources[0].Similarity)
}

func TestAssembleContextPreviewTruncation(t *testing.T) {
	long := strings.Repeat("x", 300)
	results := []RankedResult{
		{Id: uuid.New(), ContentType: ContentTypeLearningContent, ContentText: long, Similarity: 0.9},
		{Id: uuid.New(), ContentType: ContentTypeLearningContent, ContentText: "short", Similarity: 0.8},
	}

	_, sources := AssembleContext(results)

	assert.Equal(t, strings.Repeat("x", 200)+"...", sources[0].Preview)
	// Short texts keep the trailing ellipsis too.
	assert.Equal(t, "short...", sources[1].Preview)

	// The context block keeps the full text, only previews are truncated.
	block, _ := AssembleContext(results[:1])
	assert.Contains(t, block, long)
}
