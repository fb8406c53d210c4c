package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/promptner/promptner/internal/paths"
)

// PipelineConfig is the top-level pipeline descriptor: a language tag and
// the ordered component names to run.
type PipelineConfig struct {
	Lang       string   `toml:"lang"`
	Components []string `toml:"components"`
}

// ModelConfig declares which LLM backend a component's prompts are sent to.
type ModelConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

// ComponentConfig declares one pipeline stage: a factory name plus the
// stage-specific settings that factory requires.
type ComponentConfig struct {
	Factory          string            `toml:"factory"`
	Labels           []string          `toml:"labels"`
	LabelDefinitions map[string]string `toml:"label_definitions"`
	Instructions     string            `toml:"instructions"`
	Examples         string            `toml:"examples"`
	Model            ModelConfig       `toml:"model"`
}

// StoreConfig declares an optional graph database to persist annotations to.
type StoreConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ConcurrencyConfig struct {
	Batch int `toml:"batch"`
}

type Config struct {
	Paths       map[string]string          `toml:"paths"`
	Pipeline    PipelineConfig             `toml:"pipeline"`
	Components  map[string]ComponentConfig `toml:"components"`
	Store       *StoreConfig               `toml:"store"`
	Concurrency ConcurrencyConfig          `toml:"concurrency"`
}

// Load reads a TOML configuration file and resolves every ${paths.name}
// reference before decoding. Interpolation happens on the raw tree, so a
// locator is already literal by the time any component sees it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and interpolates raw TOML configuration bytes.
func Parse(data []byte) (*Config, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	resolver, err := ResolverFromTree(tree)
	if err != nil {
		return nil, err
	}

	interpolated, err := resolver.InterpolateTree(tree)
	if err != nil {
		return nil, err
	}

	resolved, err := toml.Marshal(interpolated)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(resolved, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// ResolverFromTree builds a path resolver from the [paths] section of a
// decoded configuration tree. A missing section yields an empty resolver.
func ResolverFromTree(tree map[string]any) (*paths.Resolver, error) {
	section := make(map[string]string)
	if raw, ok := tree["paths"].(map[string]any); ok {
		for name, v := range raw {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("paths entry %q is not a string", name)
			}
			section[name] = s
		}
	}
	return paths.NewResolver(section)
}
