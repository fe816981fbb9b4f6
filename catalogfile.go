package quizshow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCatalogFile reads a YAML catalog. An empty path returns the reference
// catalog. The result is validated; malformed entries are an error here
// rather than silently dropped.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(c.Questions) == 0 {
		return nil, fmt.Errorf("catalog file %s has no questions", path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	VerboseLog("Loaded %d questions from %s", len(c.Questions), path)
	return &c, nil
}

// WriteCatalogFile writes c to path as YAML
func WriteCatalogFile(path string, c *Catalog) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}
