package organize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCatalogBuiltins(t *testing.T) {
	c := NewCatalog()
	for _, id := range []string{StrategyDomainGroups, StrategySemanticClusters, StrategyAlphabetical} {
		s, ok := c.Get(id)
		if !ok {
			t.Errorf("builtin strategy %q missing", id)
			continue
		}
		if s.Label == "" || s.Instructions == "" {
			t.Errorf("builtin strategy %q has empty label or instructions", id)
		}
	}
	if _, ok := c.Get("nope"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestLoadCatalogEmptyPath(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog(\"\") error = %v", err)
	}
	if _, ok := c.Get(StrategyDomainGroups); !ok {
		t.Error("empty path should yield the builtin catalog")
	}
}

func TestLoadCatalogOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategies.yaml")
	content := `strategies:
  - id: domain-groups
    instructions: "Custom grouping instructions."
  - id: my-custom
    label: "My custom"
    instructions: "Do it my way."
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	overridden, _ := c.Get(StrategyDomainGroups)
	if overridden.Instructions != "Custom grouping instructions." {
		t.Errorf("instructions = %q, want override", overridden.Instructions)
	}
	if overridden.Label == "" {
		t.Error("missing label should fall back to the builtin one")
	}

	custom, ok := c.Get("my-custom")
	if !ok {
		t.Fatal("new strategy from file missing")
	}
	if custom.Label != "My custom" {
		t.Errorf("custom label = %q", custom.Label)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("strategies: {not: a list}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Error("malformed yaml should fail")
	}
}
