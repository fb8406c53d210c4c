package examples

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
	{"text": "Aspirin treats headache", "entities": [{"start": 0, "end": 7, "label": "DRUG"}]},
	{"text": "Fever is a symptom", "entities": []}
]`

func countingReader(data []byte, reads *int) ReadFunc {
	return func(locator string) ([]byte, error) {
		*reads++
		return data, nil
	}
}

func TestLoad(t *testing.T) {
	var reads int
	s := NewStore("examples.json", WithReadFunc(countingReader([]byte(sampleJSON), &reads)))

	exs, err := s.Examples()
	require.NoError(t, err)
	require.Len(t, exs, 2)
	assert.Equal(t, "Aspirin treats headache", exs[0].Text)
	assert.Equal(t, Entity{Start: 0, End: 7, Label: "DRUG"}, exs[0].Entities[0])
}

// Re-iterating the sequence yields identical content without touching the
// underlying resource again.
func TestRestartableWithoutReread(t *testing.T) {
	var reads int
	s := NewStore("examples.json", WithReadFunc(countingReader([]byte(sampleJSON), &reads)))

	first, err := s.Examples()
	require.NoError(t, err)
	second, err := s.Examples()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, reads)
}

func TestMissingResource(t *testing.T) {
	s := NewStore("does-not-exist.json")

	_, err := s.Examples()
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestFailedReadIsCached(t *testing.T) {
	var reads int
	s := NewStore("x.json", WithReadFunc(func(string) ([]byte, error) {
		reads++
		return nil, os.ErrNotExist
	}))

	_, err := s.Examples()
	require.Error(t, err)
	_, err = s.Examples()
	require.Error(t, err)
	assert.Equal(t, 1, reads)
}

func TestMalformedJSON(t *testing.T) {
	var reads int
	s := NewStore("x.json", WithReadFunc(countingReader([]byte(`{"not": "a list"}`), &reads)))

	_, err := s.Examples()
	assert.ErrorIs(t, err, ErrExampleFormat)
}

func TestSpanOutsideBounds(t *testing.T) {
	bad := `[{"text": "short", "entities": [{"start": 0, "end": 50, "label": "DRUG"}]}]`
	var reads int
	s := NewStore("x.json", WithReadFunc(countingReader([]byte(bad), &reads)))

	_, err := s.Examples()
	assert.ErrorIs(t, err, ErrExampleFormat)
}

func TestMissingLabel(t *testing.T) {
	bad := `[{"text": "short", "entities": [{"start": 0, "end": 5}]}]`
	var reads int
	s := NewStore("x.json", WithReadFunc(countingReader([]byte(bad), &reads)))

	_, err := s.Examples()
	assert.ErrorIs(t, err, ErrExampleFormat)
}

func TestReaderErrorPropagates(t *testing.T) {
	readErr := errors.New("boom")
	s := NewStore("x.json", WithReadFunc(func(string) ([]byte, error) {
		return nil, readErr
	}))

	_, err := s.Examples()
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
