// Package catalog loads the curated payment categories bundled with the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
)

//go:embed categories.yaml
var categoriesYAML []byte

type categoryFile struct {
	Categories []struct {
		Name  string `yaml:"name"`
		Label string `yaml:"label"`
	} `yaml:"categories"`
}

// Catalog is an immutable list of payment categories.
type Catalog struct {
	categories []entity.PaymentCategory
}

// Load parses the bundled category list.
func Load() (*Catalog, error) {
	return Parse(categoriesYAML)
}

// Parse builds a catalog from YAML. Names must be unique and not blank; a missing label
// defaults to the name.
func Parse(data []byte) (*Catalog, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	seen := make(map[string]bool, len(file.Categories))
	categories := make([]entity.PaymentCategory, 0, len(file.Categories))
	for i, c := range file.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d has no name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = true

		label := strings.TrimSpace(c.Label)
		if label == "" {
			label = name
		}
		categories = append(categories, entity.PaymentCategory{Name: name, Label: label})
	}

	return &Catalog{categories: categories}, nil
}

// List returns a copy of the categories in file order.
func (c *Catalog) List() []entity.PaymentCategory {
	out := make([]entity.PaymentCategory, len(c.categories))
	copy(out, c.categories)
	return out
}

var _ adapter.CategoryCatalog = (*Catalog)(nil)
