package pipeline

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/promptner/promptner/internal/config"
)

// AssemblyError reports every requirement violated during assembly, not
// just the first one found.
type AssemblyError struct {
	Violations []error
}

func (e *AssemblyError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("pipeline assembly failed: %s", strings.Join(msgs, "; "))
}

func (e *AssemblyError) Unwrap() []error { return e.Violations }

// Assemble validates the pipeline descriptor and constructs every declared
// component in order. All configuration problems (unknown factories, empty
// taxonomies, unresolvable model backends, a bad language tag) are collected
// and returned together as an *AssemblyError.
func Assemble(ctx context.Context, cfg *config.Config, registry *Registry) (*Pipeline, error) {
	var violations []error

	lang, err := language.Parse(cfg.Pipeline.Lang)
	if err != nil {
		violations = append(violations, fmt.Errorf("unrecognized language tag %q: %w", cfg.Pipeline.Lang, err))
	}

	if len(cfg.Pipeline.Components) == 0 {
		violations = append(violations, fmt.Errorf("pipeline declares no components"))
	}

	components := make([]Component, 0, len(cfg.Pipeline.Components))
	for _, name := range cfg.Pipeline.Components {
		cc, ok := cfg.Components[name]
		if !ok {
			violations = append(violations, fmt.Errorf("component %q has no configuration section", name))
			continue
		}

		factory, ok := registry.Lookup(cc.Factory)
		if !ok {
			violations = append(violations, fmt.Errorf("component %q declares unknown factory %q (registered: %s)",
				name, cc.Factory, strings.Join(registry.Names(), ", ")))
			continue
		}

		component, err := factory(ctx, name, cc)
		if err != nil {
			violations = append(violations, fmt.Errorf("component %q: %w", name, err))
			continue
		}
		components = append(components, component)
	}

	if len(violations) > 0 {
		return nil, &AssemblyError{Violations: violations}
	}

	return &Pipeline{
		lang:       lang,
		components: components,
	}, nil
}
