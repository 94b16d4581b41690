package organize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strategy describes one way of regrouping bookmarks.
type Strategy struct {
	ID           string `yaml:"id"`
	Label        string `yaml:"label"`
	Instructions string `yaml:"instructions"`
}

// Built-in strategy ids.
const (
	StrategyDomainGroups     = "domain-groups"
	StrategySemanticClusters = "semantic-clusters"
	StrategyAlphabetical     = "alphabetical"
)

func builtinStrategies() []Strategy {
	return []Strategy{
		{
			ID:    StrategyDomainGroups,
			Label: "Group by site",
			Instructions: "Group the bookmarks by the website or service they belong to. " +
				"Bookmarks from the same domain or product family go into one group named after that site or service.",
		},
		{
			ID:    StrategySemanticClusters,
			Label: "Group by topic",
			Instructions: "Group the bookmarks by topic or purpose (for example: development, news, shopping, finance, learning). " +
				"Choose short, human-friendly group names and keep the number of groups small.",
		},
		{
			ID:    StrategyAlphabetical,
			Label: "Alphabetical",
			Instructions: "Group the bookmarks alphabetically by title into buckets such as \"A-D\", \"E-H\" and so on. " +
				"Every bucket name must describe its letter range.",
		},
	}
}

// Catalog maps strategy ids to their definitions.
type Catalog struct {
	strategies map[string]Strategy
}

// NewCatalog returns the built-in strategy catalog.
func NewCatalog() *Catalog {
	c := &Catalog{strategies: make(map[string]Strategy)}
	for _, s := range builtinStrategies() {
		c.strategies[s.ID] = s
	}
	return c
}

// LoadCatalog builds the catalog with per-strategy overrides from a YAML file.
// Unknown ids in the file define new strategies; known ids replace the
// built-in label/instructions.
func LoadCatalog(path string) (*Catalog, error) {
	c := NewCatalog()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy file: %w", err)
	}

	var file struct {
		Strategies []Strategy `yaml:"strategies"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse strategy yaml: %w", err)
	}

	for _, s := range file.Strategies {
		if s.ID == "" {
			continue
		}
		base := c.strategies[s.ID]
		if s.Label == "" {
			s.Label = base.Label
		}
		if s.Instructions == "" {
			s.Instructions = base.Instructions
		}
		c.strategies[s.ID] = s
	}
	return c, nil
}

// Get returns the strategy for an id.
func (c *Catalog) Get(id string) (Strategy, bool) {
	s, ok := c.strategies[id]
	return s, ok
}
