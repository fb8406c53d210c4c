// Package examples loads labeled few-shot examples used to demonstrate the
// expected output convention inside extraction prompts.
package examples

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	// ErrResourceNotFound is returned when the locator does not resolve to
	// a readable resource.
	ErrResourceNotFound = errors.New("examples: resource not found")

	// ErrExampleFormat is returned when an entry cannot be parsed into the
	// (text, spans, labels) shape.
	ErrExampleFormat = errors.New("examples: malformed example")
)

// Entity is one gold annotation inside a few-shot example.
type Entity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// Example is one supervised few-shot instance.
type Example struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
}

// ReadFunc reads the raw bytes behind a locator. Swappable in tests to
// count resource accesses.
type ReadFunc func(locator string) ([]byte, error)

// Store is a lazy, restartable example collection. The underlying resource
// is read at most once per Store; after that the loaded slice is shared
// read-only across every caller, so re-iteration is free and concurrent use
// is safe.
type Store struct {
	locator string
	read    ReadFunc

	once     sync.Once
	examples []Example
	err      error
}

// Option configures a Store.
type Option func(*Store)

// WithReadFunc overrides how the resource behind the locator is read.
func WithReadFunc(read ReadFunc) Option {
	return func(s *Store) { s.read = read }
}

// NewStore binds a store to a resource locator. Nothing is read until the
// first call to Examples.
func NewStore(locator string, opts ...Option) *Store {
	s := &Store{locator: locator, read: os.ReadFile}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Locator returns the resource locator the store was bound to.
func (s *Store) Locator() string { return s.locator }

// Examples returns the ordered example sequence, materializing it on first
// call. Callers must not modify the returned slice.
func (s *Store) Examples() ([]Example, error) {
	s.once.Do(s.load)
	return s.examples, s.err
}

func (s *Store) load() {
	data, err := s.read(s.locator)
	if err != nil {
		s.err = fmt.Errorf("%w: %q: %v", ErrResourceNotFound, s.locator, err)
		return
	}

	var loaded []Example
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.err = fmt.Errorf("%w: %q: %v", ErrExampleFormat, s.locator, err)
		return
	}

	for i, ex := range loaded {
		if err := validate(ex); err != nil {
			s.err = fmt.Errorf("%w: %q entry %d: %v", ErrExampleFormat, s.locator, i, err)
			return
		}
	}
	s.examples = loaded
}

func validate(ex Example) error {
	for _, ent := range ex.Entities {
		if ent.Label == "" {
			return fmt.Errorf("annotation (%d,%d) has no label", ent.Start, ent.End)
		}
		if ent.Start < 0 || ent.End > len(ex.Text) || ent.Start >= ent.End {
			return fmt.Errorf("span (%d,%d) outside text bounds [0,%d)", ent.Start, ent.End, len(ex.Text))
		}
	}
	return nil
}
