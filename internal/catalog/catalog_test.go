package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func sampleTiers() []Tier {
	return []Tier{
		{
			Key: "standard", Title: "Standard", Color: "blue", Icon: "server",
			Sections: []Section{
				{Key: "overview", Title: "Overview", Content: "**A**", Diagram: true},
				{Key: "vpn", Title: "VPN", Content: "- b"},
			},
		},
		{
			Key: "vm", Title: "VM", Color: "green", Icon: "server",
			Sections: []Section{
				{Key: "overview", Title: "VM Overview", Content: "text"},
			},
		},
	}
}

func TestNew(t *testing.T) {
	c, err := New(sampleTiers(), "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.DefaultTier() != "standard" {
		t.Errorf("DefaultTier = %s, want standard", c.DefaultTier())
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	tiers := c.Tiers()
	if tiers[0].Key != "standard" || tiers[1].Key != "vm" {
		t.Errorf("Tiers order = %v", tiers)
	}
	if tiers[1].Color != "green" || tiers[1].Icon != "server" {
		t.Errorf("tier metadata lost: %+v", tiers[1])
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Tier) []Tier
		def    string
		want   error
	}{
		{"empty catalog", func([]Tier) []Tier { return nil }, "", ErrEmptyCatalog},
		{"duplicate tier", func(ts []Tier) []Tier { ts[1].Key = "standard"; return ts }, "", ErrDuplicateTierKey},
		{"empty tier", func(ts []Tier) []Tier { ts[1].Sections = nil; return ts }, "", ErrEmptyTier},
		{"duplicate section", func(ts []Tier) []Tier { ts[0].Sections[1].Key = "overview"; return ts }, "", ErrDuplicateSectionKey},
		{"empty section title", func(ts []Tier) []Tier { ts[0].Sections[0].Title = ""; return ts }, "", ErrInvalidSection},
		{"empty section content", func(ts []Tier) []Tier { ts[1].Sections[0].Content = ""; return ts }, "", ErrInvalidSection},
		{"empty section key", func(ts []Tier) []Tier { ts[1].Sections[0].Key = ""; return ts }, "", ErrInvalidSection},
		{"empty tier key", func(ts []Tier) []Tier { ts[0].Key = ""; return ts }, "", ErrInvalidSection},
		{"empty tier title", func(ts []Tier) []Tier { ts[0].Title = ""; return ts }, "", ErrInvalidSection},
		{"unknown default", func(ts []Tier) []Tier { return ts }, "strict", ErrUnknownTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.mutate(sampleTiers()), tt.def)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if c != nil {
				t.Error("expected nil catalog on failure")
			}
		})
	}
}

func TestSectionKeysReusedAcrossTiers(t *testing.T) {
	if _, err := New(sampleTiers(), "vm"); err != nil {
		t.Fatalf("shared section keys across tiers must be allowed: %v", err)
	}
}

func TestSections(t *testing.T) {
	c, err := New(sampleTiers(), "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sections, err := c.Sections("standard")
	if err != nil {
		t.Fatalf("Sections failed: %v", err)
	}
	if len(sections) != 2 || sections[0].Key != "overview" || sections[1].Key != "vpn" {
		t.Errorf("Sections = %+v", sections)
	}

	if _, err := c.Sections("nonexistent"); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("err = %v, want ErrUnknownTier", err)
	}
}

func TestSectionsAreCopies(t *testing.T) {
	tiers := sampleTiers()
	c, err := New(tiers, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// caller's input slice must not alias the catalog
	tiers[0].Sections[0].Title = "mutated"

	sections, _ := c.Sections("standard")
	sections[1].Title = "mutated"

	again, _ := c.Sections("standard")
	if again[0].Title != "Overview" || again[1].Title != "VPN" {
		t.Errorf("catalog mutated through returned slice: %+v", again)
	}
}

func TestSection(t *testing.T) {
	c, err := New(sampleTiers(), "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s, err := c.Section("vm", "overview")
	if err != nil {
		t.Fatalf("Section failed: %v", err)
	}
	if s.Title != "VM Overview" {
		t.Errorf("Title = %s, want VM Overview", s.Title)
	}

	if _, err := c.Section("vm", "vpn"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("err = %v, want ErrUnknownSection", err)
	}
	if _, err := c.Section("nope", "vpn"); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("err = %v, want ErrUnknownTier", err)
	}
}

func TestHasTierAndPosition(t *testing.T) {
	c, err := New(sampleTiers(), "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !c.HasTier("vm") || c.HasTier("strict") {
		t.Error("HasTier mismatch")
	}
	if c.Position("vm") != 1 || c.Position("strict") != -1 {
		t.Errorf("Position mismatch: vm=%d strict=%d", c.Position("vm"), c.Position("strict"))
	}
}

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	wantKeys := []string{"standard", "vm", "moderate", "strict"}
	keys := c.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("Keys = %v, want %v", keys, wantKeys)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] {
			t.Errorf("Keys[%d] = %s, want %s", i, keys[i], wantKeys[i])
		}
	}

	if c.DefaultTier() != "standard" {
		t.Errorf("DefaultTier = %s, want standard", c.DefaultTier())
	}

	// every tier has an overview
	for _, k := range wantKeys {
		if _, err := c.Section(k, "overview"); err != nil {
			t.Errorf("tier %s: %v", k, err)
		}
	}

	overview, _ := c.Section("standard", "overview")
	if !overview.Diagram {
		t.Error("standard/overview should carry the diagram flag")
	}
}

func TestLoad(t *testing.T) {
	data := []byte(`
default_tier: b
tiers:
  - key: a
    title: Tier A
    color: blue
    icon: server
    sections:
      - key: one
        title: One
        content: |-
          **Head**
          - item
  - key: b
    title: Tier B
    color: red
    icon: lock
    sections:
      - key: one
        title: One again
        diagram: true
        content: body
`)

	c, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.DefaultTier() != "b" {
		t.Errorf("DefaultTier = %s, want b", c.DefaultTier())
	}

	s, err := c.Section("a", "one")
	if err != nil {
		t.Fatalf("Section failed: %v", err)
	}
	if s.Content != "**Head**\n- item" {
		t.Errorf("Content = %q", s.Content)
	}

	s, _ = c.Section("b", "one")
	if !s.Diagram {
		t.Error("diagram flag not parsed")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load([]byte("tiers: [")); err == nil {
		t.Error("expected parse error")
	}

	dup := []byte(`
tiers:
  - key: a
    title: A
    sections:
      - {key: x, title: X, content: c}
      - {key: x, title: Y, content: d}
`)
	if _, err := Load(dup); !errors.Is(err, ErrDuplicateSectionKey) {
		t.Errorf("err = %v, want ErrDuplicateSectionKey", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, DefaultYAML(), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if c.Len() != 4 {
		t.Errorf("Len = %d, want 4", c.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
