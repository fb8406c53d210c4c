// Package paths holds named filesystem locations referenced symbolically
// elsewhere in the configuration via ${paths.name} placeholders.
package paths

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnknownPath is returned when a symbolic name was never registered.
	ErrUnknownPath = errors.New("paths: unknown path name")

	// ErrCyclicReference is returned when path entries reference each other
	// in a cycle.
	ErrCyclicReference = errors.New("paths: cyclic path reference")
)

var refPattern = regexp.MustCompile(`\$\{paths\.([A-Za-z0-9_-]+)\}`)

// Resolver maps symbolic names to resource locators. Entries are resolved
// once at construction; lookups after that are plain map reads, so a
// Resolver is safe for concurrent use.
type Resolver struct {
	locators map[string]string
}

// NewResolver builds a resolver from a paths section. Entries may reference
// each other with ${paths.name}; references are substituted here, before
// any resource is opened. Cycles and references to missing names fail.
func NewResolver(section map[string]string) (*Resolver, error) {
	r := &Resolver{locators: make(map[string]string, len(section))}

	state := make(map[string]int, len(section)) // 0 unvisited, 1 in progress, 2 done
	var resolve func(name string) (string, error)
	resolve = func(name string) (string, error) {
		raw, ok := section[name]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownPath, name)
		}
		switch state[name] {
		case 2:
			return r.locators[name], nil
		case 1:
			return "", fmt.Errorf("%w: %q", ErrCyclicReference, name)
		}
		state[name] = 1

		var resolveErr error
		value := refPattern.ReplaceAllStringFunc(raw, func(match string) string {
			ref := refPattern.FindStringSubmatch(match)[1]
			resolved, err := resolve(ref)
			if err != nil {
				if resolveErr == nil {
					resolveErr = err
				}
				return match
			}
			return resolved
		})
		if resolveErr != nil {
			return "", resolveErr
		}

		state[name] = 2
		r.locators[name] = value
		return value, nil
	}

	for name := range section {
		if _, err := resolve(name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register stores a symbolic name to locator mapping. The locator is taken
// literally; no substitution is applied.
func (r *Resolver) Register(name, locator string) {
	r.locators[name] = locator
}

// Resolve returns the locator registered under name.
func (r *Resolver) Resolve(name string) (string, error) {
	locator, ok := r.locators[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPath, name)
	}
	return locator, nil
}

// Interpolate substitutes every ${paths.name} reference in s with its
// resolved locator. Substitution is single-pass: resolved values are taken
// literally even if they happen to contain placeholder syntax.
func (r *Resolver) Interpolate(s string) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}
	var firstErr error
	out := refPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := refPattern.FindStringSubmatch(match)[1]
		locator, err := r.Resolve(name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return match
		}
		return locator
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// InterpolateTree returns a copy of a decoded configuration tree with every
// string value passed through Interpolate. The input tree is not modified.
func (r *Resolver) InterpolateTree(tree map[string]any) (map[string]any, error) {
	out, err := r.interpolateValue(tree)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func (r *Resolver) interpolateValue(v any) (any, error) {
	switch value := v.(type) {
	case string:
		return r.Interpolate(value)
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, child := range value {
			sub, err := r.interpolateValue(child)
			if err != nil {
				return nil, err
			}
			out[k] = sub
		}
		return out, nil
	case []any:
		out := make([]any, len(value))
		for i, child := range value {
			sub, err := r.interpolateValue(child)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	default:
		return v, nil
	}
}
