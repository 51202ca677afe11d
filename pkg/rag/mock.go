package rag

import (
	"fmt"
	"strings"
)

// Canned answers for mock mode, matched by keyword against the query.
// Order matters: the first matching topic wins.
var mockAnswers = []struct {
	topic  string
	answer string
}{
	{"javascript", "JavaScript is a high-level programming language. It enables interactive web pages and is essential for web development."},
	{"react", "React is a JavaScript library for building user interfaces, particularly single-page applications."},
	{"nodejs", "Node.js is a JavaScript runtime built on Chrome's V8 engine, allowing server-side development."},
	{"leadership", "Leadership involves guiding and motivating others to achieve common goals."},
	{"project management", "Project management involves planning, organizing, and managing resources to achieve specific objectives."},
	{"machine learning", "Machine learning enables systems to learn and improve from experience without explicit programming."},
}

const (
	mockConfidence       = 0.90
	mockSourceSimilarity = 0.95
)

// MockResponder answers chat turns without any external call. It is used in
// tests and forced on when the service runs without provider credentials.
type MockResponder struct{}

func NewMockResponder() *MockResponder {
	return &MockResponder{}
}

// Respond returns a canned answer keyed by keyword match, with a fixed high
// confidence and one synthetic source.
func (m *MockResponder) Respond(query string) Response {
	queryLower := strings.ToLower(query)

	answer := ""
	for _, canned := range mockAnswers {
		if strings.Contains(queryLower, canned.topic) {
			answer = canned.answer
			break
		}
	}
	if answer == "" {
		answer = fmt.Sprintf("Mock RAG response for: %q. This is a test response to verify the RAG system is working correctly. The system analyzed your query and generated this contextual answer.", query)
	}

	return Response{
		Success:    true,
		Response:   answer,
		Confidence: mockConfidence,
		Sources: []Source{
			{
				Id:          "mock-content-1",
				ContentType: ContentTypeLearningContent,
				Similarity:  mockSourceSimilarity,
				Preview:     "This is a mock document for testing RAG functionality.",
			},
		},
	}
}
