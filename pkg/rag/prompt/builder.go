package prompt

import (
	"strings"
)

// Builder assembles the system prompts for answer generation. Two variants
// exist: a grounded prompt embedding the numbered context block, and a plain
// prompt for turns where retrieval produced nothing.
type Builder struct {
	contextBlock string
}

func NewBuilder(contextBlock string) *Builder {
	return &Builder{contextBlock: contextBlock}
}

// BuildGrounded creates the system prompt for the with-context branch.
func (b *Builder) BuildGrounded() string {
	var prompt strings.Builder

	prompt.WriteString("You are a helpful corporate learning assistant. Use the provided context to answer the user's question accurately and helpfully.\n\n")

	prompt.WriteString("Context information:\n")
	prompt.WriteString(b.contextBlock)
	prompt.WriteString("\n\n")

	b.writeGuidelines(&prompt)

	return prompt.String()
}

func (b *Builder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("Guidelines:\n")
	prompt.WriteString("- Answer based on the provided context\n")
	prompt.WriteString("- If the context doesn't contain enough information, say so\n")
	prompt.WriteString("- Provide actionable advice when possible\n")
	prompt.WriteString("- Be concise but comprehensive\n")
	prompt.WriteString("- Include relevant learning recommendations\n")
	prompt.WriteString("- Use a helpful and professional tone")
}

// BuildPlain creates the system prompt for the no-context branch.
func BuildPlain() string {
	return "You are a helpful corporate learning assistant. Provide clear, professional responses to help users with their learning goals."
}
