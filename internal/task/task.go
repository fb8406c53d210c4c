// Package task binds a label taxonomy, per-label definitions, free-text
// instructions and few-shot examples into a prompt-construction strategy
// plus a response-parsing strategy.
package task

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/promptner/promptner/internal/examples"
	"github.com/promptner/promptner/internal/model"
)

// maxMentionLen caps accepted mention length in runes. Longer mentions are
// rejected as implausible model output.
const maxMentionLen = 200

// Task is one configured extraction task. Immutable after construction and
// safe for concurrent use; the example store materializes once and is
// shared across documents.
type Task struct {
	taxonomy     *Taxonomy
	instructions string
	store        *examples.Store
}

func New(taxonomy *Taxonomy, instructions string, store *examples.Store) *Task {
	return &Task{
		taxonomy:     taxonomy,
		instructions: instructions,
		store:        store,
	}
}

// Taxonomy returns the task's label taxonomy.
func (t *Task) Taxonomy() *Taxonomy { return t.taxonomy }

// BuildPrompt renders the extraction prompt for a document: instructions,
// then the taxonomy, then every few-shot example in the output convention,
// then the target document. Deterministic in its inputs; the only error
// sources are the example resource failing to load and an example carrying
// a label outside the taxonomy.
func (t *Task) BuildPrompt(docText string) (string, error) {
	exs, err := t.store.Examples()
	if err != nil {
		return "", fmt.Errorf("failed to load examples: %w", err)
	}

	// Gold labels must come from this task's taxonomy; a stray label would
	// demonstrate an output the parser later rejects.
	for i, ex := range exs {
		for _, ent := range ex.Entities {
			if !t.taxonomy.Has(ent.Label) {
				return "", fmt.Errorf("%w: entry %d: label %q not in taxonomy",
					examples.ErrExampleFormat, i, ent.Label)
			}
		}
	}

	var b strings.Builder
	if t.instructions != "" {
		b.WriteString(t.instructions)
		b.WriteString("\n\n")
	}

	b.WriteString("Labels:\n")
	for _, label := range t.taxonomy.Labels() {
		if label.Definition != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label.Name, label.Definition)
		} else {
			fmt.Fprintf(&b, "- %s\n", label.Name)
		}
	}

	if len(exs) > 0 {
		b.WriteString("\nExamples:\n")
		for _, ex := range exs {
			fmt.Fprintf(&b, "\nText: %s\nEntities:\n", ex.Text)
			for _, ent := range ex.Entities {
				fmt.Fprintf(&b, "%s|%s\n", ex.Text[ent.Start:ent.End], ent.Label)
			}
		}
	}

	fmt.Fprintf(&b, "\nText: %s\nEntities:\n", docText)
	return b.String(), nil
}

// ParseResponse parses raw model output into annotations on docText. It is
// total: any input, including empty strings and arbitrary bytes, yields a
// (possibly empty) annotation set plus recorded warnings, never an error.
//
// Expected convention is one entity per line, "mention|LABEL". Resolution
// policy for duplicates and overlaps, applied in line order:
//   - mentions are located left-to-right, resuming after the previously
//     accepted span, wrapping to the start of the document if not found;
//   - the first-seen span for a position wins;
//   - exact duplicate spans and spans overlapping an accepted one are
//     dropped;
//   - mentions longer than maxMentionLen runes are rejected.
//
// The same raw text against the same document always yields the same set.
func (t *Task) ParseResponse(raw, docText string) ([]model.Annotation, []model.Warning) {
	var (
		annotations []model.Annotation
		warnings    []model.Warning
		cursor      int
	)
	seen := make(map[model.Span]bool)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sep := strings.LastIndex(line, "|")
		if sep < 0 {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarnResponseParse,
				Message: fmt.Sprintf("unparsable line %q", truncate(line)),
			})
			continue
		}

		mention := strings.TrimSpace(line[:sep])
		label := strings.TrimSpace(line[sep+1:])
		if mention == "" || label == "" {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarnResponseParse,
				Message: fmt.Sprintf("unparsable line %q", truncate(line)),
			})
			continue
		}

		if !t.taxonomy.Has(label) {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarnUnknownLabel,
				Message: fmt.Sprintf("label %q is not in the taxonomy", label),
			})
			continue
		}

		if utf8.RuneCountInString(mention) > maxMentionLen {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarnResponseParse,
				Message: fmt.Sprintf("mention %q exceeds maximum length", truncate(mention)),
			})
			continue
		}

		span, found := locate(docText, mention, cursor)
		if !found {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarnResponseParse,
				Message: fmt.Sprintf("mention %q not found in document", truncate(mention)),
			})
			continue
		}

		if seen[span] || overlapsAny(annotations, span) {
			continue
		}
		seen[span] = true
		annotations = append(annotations, model.Annotation{
			Span:  span,
			Label: label,
			Text:  mention,
		})
		cursor = span.End
	}

	return annotations, warnings
}

// locate finds mention in text starting at from, wrapping to the beginning
// when not found past the cursor.
func locate(text, mention string, from int) (model.Span, bool) {
	if from <= len(text) {
		if idx := strings.Index(text[from:], mention); idx >= 0 {
			start := from + idx
			return model.Span{Start: start, End: start + len(mention)}, true
		}
	}
	if idx := strings.Index(text, mention); idx >= 0 {
		return model.Span{Start: idx, End: idx + len(mention)}, true
	}
	return model.Span{}, false
}

func overlapsAny(annotations []model.Annotation, span model.Span) bool {
	for _, a := range annotations {
		if a.Span.Overlaps(span) {
			return true
		}
	}
	return false
}

func truncate(s string) string {
	const limit = 80
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
