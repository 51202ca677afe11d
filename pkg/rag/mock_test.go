package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockResponderKeywordMatch(t *testing.T) {
	m := NewMockResponder()

	cases := []struct {
		query    string
		expected string
	}{
		{"Tell me about JavaScript basics", "JavaScript is a high-level programming language. It enables interactive web pages and is essential for web development."},
		{"how do I learn REACT?", "React is a JavaScript library for building user interfaces, particularly single-page applications."},
		{"what is machine learning", "Machine learning enables systems to learn and improve from experience without explicit programming."},
	}

	for _, tc := range cases {
		resp := m.Respond(tc.query)
		assert.Equal(t, tc.expected, resp.Response, "query %q", tc.query)
	}
}

func TestMockResponderDefaultAnswer(t *testing.T) {
	resp := NewMockResponder().Respond("quantum chromodynamics")

	assert.Contains(t, resp.Response, `Mock RAG response for: "quantum chromodynamics"`)
}

func TestMockResponderResponseShape(t *testing.T) {
	resp := NewMockResponder().Respond("leadership training")

	assert.True(t, resp.Success)
	assert.Equal(t, 0.90, resp.Confidence)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "mock-content-1", resp.Sources[0].Id)
	assert.Equal(t, ContentTypeLearningContent, resp.Sources[0].ContentType)
	assert.Equal(t, 0.95, resp.Sources[0].Similarity)
}
