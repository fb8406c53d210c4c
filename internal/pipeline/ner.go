package pipeline

import (
	"context"
	"fmt"

	"github.com/promptner/promptner/internal/config"
	"github.com/promptner/promptner/internal/examples"
	"github.com/promptner/promptner/internal/llm"
	"github.com/promptner/promptner/internal/model"
	"github.com/promptner/promptner/internal/task"
)

// nerComponent is the LLM-backed extraction stage: build a prompt from the
// task declaration, send it through the model binding, parse the raw
// response into annotations.
type nerComponent struct {
	name   string
	task   *task.Task
	client llm.Client
}

// newNERComponent is the "llm_ner" factory. Taxonomy, model binding and the
// examples locator are validated here so misconfiguration fails at
// assembly, not per document.
func newNERComponent(ctx context.Context, name string, cfg config.ComponentConfig) (Component, error) {
	taxonomy, err := task.FromNames(cfg.Labels, cfg.LabelDefinitions)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, cfg.Model)
	if err != nil {
		return nil, err
	}

	if cfg.Examples == "" {
		return nil, fmt.Errorf("no examples locator configured")
	}

	store := examples.NewStore(cfg.Examples)
	return &nerComponent{
		name:   name,
		task:   task.New(taxonomy, cfg.Instructions, store),
		client: client,
	}, nil
}

// NewNER wires an already-constructed task and model client into an
// extraction component. Assemble goes through the "llm_ner" factory; this
// constructor serves embedding the component directly.
func NewNER(name string, t *task.Task, client llm.Client) Component {
	return &nerComponent{name: name, task: t, client: client}
}

func (c *nerComponent) Name() string { return c.name }

// Process annotates the document. Model failures and unparsable output
// degrade to warnings on the document; only a failing example resource is
// a real error, since no prompt can be built without it.
func (c *nerComponent) Process(ctx context.Context, doc *model.Document) (*model.Document, error) {
	prompt, err := c.task.BuildPrompt(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", c.name, err)
	}

	out := *doc
	out.Warnings = append([]model.Warning(nil), doc.Warnings...)
	raw, err := c.client.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		out.Annotations = nil
		out.Warnings = append(out.Warnings, model.Warning{
			Kind:    model.WarnModelFailure,
			Message: fmt.Sprintf("model call failed: %v", err),
		})
		return &out, nil
	}

	annotations, warnings := c.task.ParseResponse(raw, doc.Text)
	out.Annotations = annotations
	out.Warnings = append(out.Warnings, warnings...)
	return &out, nil
}
