// Package pipeline assembles configured components into a named, ordered
// document-processing sequence and runs documents through it.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/promptner/promptner/internal/model"
)

// Component is one processing stage. Process must not modify the input
// document; it returns a new document carrying the stage's output.
type Component interface {
	Name() string
	Process(ctx context.Context, doc *model.Document) (*model.Document, error)
}

// Pipeline is an assembled, immutable processing sequence. Safe for
// concurrent Process calls: all configuration state is read-only and every
// result is a pure function of (document, configuration).
type Pipeline struct {
	lang       language.Tag
	components []Component
}

// Lang returns the pipeline's language tag.
func (p *Pipeline) Lang() language.Tag { return p.lang }

// Components returns the stage names in processing order.
func (p *Pipeline) Components() []string {
	names := make([]string, len(p.components))
	for i, c := range p.components {
		names[i] = c.Name()
	}
	return names
}

// Process runs the document through every stage in declared order,
// threading each stage's output into the next. The input document is left
// unmodified.
func (p *Pipeline) Process(ctx context.Context, doc *model.Document) (*model.Document, error) {
	current := doc
	for _, c := range p.components {
		next, err := c.Process(ctx, current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// ProcessText wraps raw text in a fresh document and processes it.
func (p *Pipeline) ProcessText(ctx context.Context, text string) (*model.Document, error) {
	return p.Process(ctx, model.NewDocument(text))
}

// ProcessBatch processes independent documents concurrently, capping
// outstanding model calls at limit (limit < 1 means sequential). Results
// keep input order. The first fatal error cancels the remaining work;
// per-document extraction problems are warnings, not errors, and never
// stop the batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, docs []*model.Document, limit int) ([]*model.Document, error) {
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]*model.Document, len(docs))
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			out, err := p.Process(ctx, doc)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
