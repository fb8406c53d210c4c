package model

import "github.com/google/uuid"

// Span is a half-open [Start, End) byte offset range into a document's text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Annotation is one entity mention found in a document.
type Annotation struct {
	Span
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Document is one unit of input text flowing through the pipeline.
// Annotations and Warnings are populated by pipeline stages; the text
// itself is never modified.
type Document struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations"`
	Warnings    []Warning    `json:"warnings,omitempty"`
}

func NewDocument(text string) *Document {
	return &Document{
		ID:   uuid.New().String(),
		Text: text,
	}
}

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}
