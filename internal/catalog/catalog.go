package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTier is returned when a tier key is not part of the catalog
	ErrUnknownTier = errors.New("unknown tier")
	// ErrUnknownSection is returned when a section key is not part of a tier
	ErrUnknownSection = errors.New("unknown section")
	// ErrDuplicateSectionKey is returned when one tier defines the same section key twice
	ErrDuplicateSectionKey = errors.New("duplicate section key")
	// ErrDuplicateTierKey is returned when two tiers share a key
	ErrDuplicateTierKey = errors.New("duplicate tier key")
	// ErrEmptyCatalog is returned when no tiers are defined
	ErrEmptyCatalog = errors.New("catalog has no tiers")
	// ErrEmptyTier is returned when a tier has no sections
	ErrEmptyTier = errors.New("tier has no sections")
	// ErrInvalidSection is returned when a tier or section misses a required field
	ErrInvalidSection = errors.New("invalid section")
)

// Section is one expandable block of documentation inside a tier
type Section struct {
	Key     string `yaml:"key" json:"key"`
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"`
	Diagram bool   `yaml:"diagram,omitempty" json:"diagram,omitempty"`
}

// Tier is one deployment configuration with its ordered sections
type Tier struct {
	Key      string    `yaml:"key" json:"key"`
	Title    string    `yaml:"title" json:"title"`
	Color    string    `yaml:"color" json:"color"`
	Icon     string    `yaml:"icon" json:"icon"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// TierInfo is the tier metadata without its sections
type TierInfo struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Info returns the tier metadata
func (t Tier) Info() TierInfo {
	return TierInfo{Key: t.Key, Title: t.Title, Color: t.Color, Icon: t.Icon}
}

// Catalog holds the validated tiers. It is immutable after New.
type Catalog struct {
	tiers       []Tier
	index       map[string]int
	defaultTier string
}

// New validates the tiers and builds a catalog.
// An empty defaultKey selects the first tier.
func New(tiers []Tier, defaultKey string) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		tiers: make([]Tier, 0, len(tiers)),
		index: make(map[string]int, len(tiers)),
	}

	for i, t := range tiers {
		if err := validateTier(i, t); err != nil {
			return nil, err
		}
		if _, exists := c.index[t.Key]; exists {
			return nil, fmt.Errorf("tier %q: %w", t.Key, ErrDuplicateTierKey)
		}
		c.index[t.Key] = len(c.tiers)
		c.tiers = append(c.tiers, cloneTier(t))
	}

	if defaultKey == "" {
		defaultKey = c.tiers[0].Key
	}
	if _, ok := c.index[defaultKey]; !ok {
		return nil, fmt.Errorf("default tier %q: %w", defaultKey, ErrUnknownTier)
	}
	c.defaultTier = defaultKey

	return c, nil
}

func validateTier(pos int, t Tier) error {
	if t.Key == "" {
		return fmt.Errorf("tier #%d: empty key: %w", pos+1, ErrInvalidSection)
	}
	if t.Title == "" {
		return fmt.Errorf("tier %q: empty title: %w", t.Key, ErrInvalidSection)
	}
	if len(t.Sections) == 0 {
		return fmt.Errorf("tier %q: %w", t.Key, ErrEmptyTier)
	}

	seen := make(map[string]bool, len(t.Sections))
	for j, s := range t.Sections {
		switch {
		case s.Key == "":
			return fmt.Errorf("tier %q section #%d: empty key: %w", t.Key, j+1, ErrInvalidSection)
		case s.Title == "":
			return fmt.Errorf("tier %q section %q: empty title: %w", t.Key, s.Key, ErrInvalidSection)
		case s.Content == "":
			return fmt.Errorf("tier %q section %q: empty content: %w", t.Key, s.Key, ErrInvalidSection)
		}
		if seen[s.Key] {
			return fmt.Errorf("tier %q section %q: %w", t.Key, s.Key, ErrDuplicateSectionKey)
		}
		seen[s.Key] = true
	}
	return nil
}

func cloneTier(t Tier) Tier {
	out := t
	out.Sections = make([]Section, len(t.Sections))
	copy(out.Sections, t.Sections)
	return out
}

// Tiers returns the tier metadata in definition order
func (c *Catalog) Tiers() []TierInfo {
	out := make([]TierInfo, len(c.tiers))
	for i, t := range c.tiers {
		out[i] = t.Info()
	}
	return out
}

// Keys returns the tier keys in definition order
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.tiers))
	for i, t := range c.tiers {
		keys[i] = t.Key
	}
	return keys
}

// HasTier reports whether key names a tier
func (c *Catalog) HasTier(key string) bool {
	_, ok := c.index[key]
	return ok
}

// DefaultTier returns the key of the tier shown on a fresh load
func (c *Catalog) DefaultTier() string {
	return c.defaultTier
}

// Len returns the number of tiers
func (c *Catalog) Len() int {
	return len(c.tiers)
}

// Tier returns a copy of the tier
func (c *Catalog) Tier(key string) (Tier, error) {
	i, ok := c.index[key]
	if !ok {
		return Tier{}, fmt.Errorf("%q: %w", key, ErrUnknownTier)
	}
	return cloneTier(c.tiers[i]), nil
}

// Sections returns the tier's sections in definition order
func (c *Catalog) Sections(tierKey string) ([]Section, error) {
	t, err := c.Tier(tierKey)
	if err != nil {
		return nil, err
	}
	return t.Sections, nil
}

// Section looks up one section of a tier
func (c *Catalog) Section(tierKey, sectionKey string) (Section, error) {
	sections, err := c.Sections(tierKey)
	if err != nil {
		return Section{}, err
	}
	for _, s := range sections {
		if s.Key == sectionKey {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("%s/%s: %w", tierKey, sectionKey, ErrUnknownSection)
}

// Position returns the zero-based position of a tier, or -1
func (c *Catalog) Position(key string) int {
	i, ok := c.index[key]
	if !ok {
		return -1
	}
	return i
}
