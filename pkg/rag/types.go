package rag

import (
	"github.com/google/uuid"
)

// Content categories a document embedding can belong to.
const (
	ContentTypeUser            = "user"
	ContentTypeSkill           = "skill"
	ContentTypeLearningContent = "learning_content"
	ContentTypeUserProgress    = "user_progress"
)

// RankedResult is a single retrieval hit returned by the vector index.
// It is transient: it lives in memory (or inside a serialized cache entry)
// and is never persisted as its own row.
type RankedResult struct {
	Id          uuid.UUID              `json:"id"`
	ContentId   *uuid.UUID             `json:"content_id"`
	ContentType string                 `json:"content_type"`
	ContentText string                 `json:"content_text"`
	Similarity  float64                `json:"similarity"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// SearchOptions controls a similarity search. ContentType is optional;
// an empty string means "search all categories".
type SearchOptions struct {
	MatchThreshold float64 `json:"match_threshold"`
	MatchCount     int     `json:"match_count"`
	ContentType    string  `json:"content_type,omitempty"`
}

// Defaults applied when the caller leaves options zero-valued.
const (
	DefaultMatchThreshold = 0.7
	DefaultMatchCount     = 5
	MaxMatchCount         = 20
)

// Normalize fills in defaults and clamps MatchCount to the allowed range.
func (o SearchOptions) Normalize() SearchOptions {
	if o.MatchThreshold <= 0 {
		o.MatchThreshold = DefaultMatchThreshold
	}
	if o.MatchCount <= 0 {
		o.MatchCount = DefaultMatchCount
	}
	if o.MatchCount > MaxMatchCount {
		o.MatchCount = MaxMatchCount
	}
	return o
}

// Source is a citation attached to a generated answer.
type Source struct {
	Id          string  `json:"id"`
	ContentId   string  `json:"content_id,omitempty"`
	ContentType string  `json:"type"`
	Similarity  float64 `json:"similarity"`
	Preview     string  `json:"preview"`
}

// Response is the terminal output of a chat turn. Every path through the
// pipeline, including failures, produces a well-formed Response.
type Response struct {
	Success        bool     `json:"success"`
	Response       string   `json:"response"`
	Confidence     float64  `json:"confidence"`
	Sources        []Source `json:"sources"`
	ResponseTimeMs int64    `json:"response_time_ms"`
}
