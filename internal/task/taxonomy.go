package task

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTaxonomy is returned when a task is declared with no labels.
	ErrEmptyTaxonomy = errors.New("task: taxonomy has no labels")

	// ErrDuplicateLabel is returned when a label name appears more than
	// once in the taxonomy.
	ErrDuplicateLabel = errors.New("task: duplicate label name")
)

// Label is one entity category the task may assign. Definition is optional
// free text; when absent the bare name is used as the prompt hint.
type Label struct {
	Name       string
	Definition string
}

// Taxonomy is the fixed, ordered label set for one extraction task.
// Immutable after construction and safe for concurrent use.
type Taxonomy struct {
	labels []Label
	index  map[string]int
}

// NewTaxonomy validates and builds a taxonomy. Declaration order is kept;
// it determines label order in prompts.
func NewTaxonomy(labels []Label) (*Taxonomy, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyTaxonomy
	}
	t := &Taxonomy{
		labels: make([]Label, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	copy(t.labels, labels)
	for i, l := range labels {
		if l.Name == "" {
			return nil, fmt.Errorf("task: label at position %d has empty name", i)
		}
		if _, exists := t.index[l.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, l.Name)
		}
		t.index[l.Name] = i
	}
	return t, nil
}

// FromNames builds a taxonomy from declared label names plus an optional
// name to definition map, the shape the configuration file uses.
func FromNames(names []string, definitions map[string]string) (*Taxonomy, error) {
	labels := make([]Label, 0, len(names))
	for _, name := range names {
		labels = append(labels, Label{Name: name, Definition: definitions[name]})
	}
	return NewTaxonomy(labels)
}

// Labels returns the labels in declaration order. Callers must not modify
// the returned slice.
func (t *Taxonomy) Labels() []Label { return t.labels }

// Has reports whether name is part of the taxonomy.
func (t *Taxonomy) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of labels.
func (t *Taxonomy) Len() int { return len(t.labels) }
