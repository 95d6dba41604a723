package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in product documentation
//
//go:embed content/catalog.yaml
var defaultCatalogYAML []byte

// File is the on-disk layout of a catalog document
type File struct {
	DefaultTier string `yaml:"default_tier,omitempty"`
	Tiers       []Tier `yaml:"tiers"`
}

// Load parses a YAML catalog document and validates it
func Load(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog parse failed: %w", err)
	}
	return New(f.Tiers, f.DefaultTier)
}

// LoadFile reads and validates a catalog file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog read failed: %w", err)
	}

	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	return Load(defaultCatalogYAML)
}

// DefaultYAML returns a copy of the built-in catalog document
func DefaultYAML() []byte {
	out := make([]byte, len(defaultCatalogYAML))
	copy(out, defaultCatalogYAML)
	return out
}
