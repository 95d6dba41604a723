// Package view combines the catalog, the selection state and the renderer
// into a surface-independent page description. The TUI, the plain-text
// printer and the HTML export all draw from it.
package view

import (
	"fmt"

	"github.com/n0roo/infradocs/internal/catalog"
	"github.com/n0roo/infradocs/internal/diagram"
	"github.com/n0roo/infradocs/internal/render"
	"github.com/n0roo/infradocs/internal/selection"
)

// SectionView is one section as it should be drawn
type SectionView struct {
	Key        string         `json:"key"`
	Title      string         `json:"title"`
	Expanded   bool           `json:"expanded"`
	HasDiagram bool           `json:"diagram,omitempty"`
	Diagram    *diagram.Asset `json:"-"`
	Blocks     []render.Block `json:"blocks,omitempty"`
}

// Page is the active tier with its sections
type Page struct {
	Tier     catalog.TierInfo `json:"tier"`
	Sections []SectionView    `json:"sections"`
}

// Build describes the page for the active tier of st.
// Content is rendered only for expanded sections and never cached.
func Build(c *catalog.Catalog, st selection.State) (Page, error) {
	tier, err := c.Tier(st.ActiveTier)
	if err != nil {
		return Page{}, fmt.Errorf("build page: %w", err)
	}

	page := Page{
		Tier:     tier.Info(),
		Sections: make([]SectionView, len(tier.Sections)),
	}
	for i, s := range tier.Sections {
		page.Sections[i] = Section(s, st.IsExpanded(s.Key))
	}
	return page, nil
}

// Section describes a single section
func Section(s catalog.Section, expanded bool) SectionView {
	sv := SectionView{
		Key:        s.Key,
		Title:      s.Title,
		Expanded:   expanded,
		HasDiagram: s.Diagram,
	}
	if !expanded {
		return sv
	}
	if asset, ok := diagram.For(s); ok {
		sv.Diagram = &asset
	}
	sv.Blocks = render.Render(s.Content)
	return sv
}

// Expanded returns a state on tierKey with the given sections expanded,
// or all of the tier's sections when none are given
func Expanded(c *catalog.Catalog, tierKey string, sectionKeys ...string) (selection.State, error) {
	st := selection.State{ActiveTier: tierKey, Expanded: make(map[string]bool)}

	if len(sectionKeys) == 0 {
		sections, err := c.Sections(tierKey)
		if err != nil {
			return st, err
		}
		for _, s := range sections {
			sectionKeys = append(sectionKeys, s.Key)
		}
	}

	for _, k := range sectionKeys {
		if _, err := c.Section(tierKey, k); err != nil {
			return st, err
		}
		st.Expanded[k] = true
	}
	return st, nil
}
