// Package diagram provides the static system architecture illustration shown
// with sections that carry the diagram flag.
package diagram

import (
	_ "embed"
	"strings"

	"github.com/n0roo/infradocs/internal/catalog"
)

// Title is shown above the illustration
const Title = "System Architecture Diagram"

// Vector rendition for HTML output
//
//go:embed architecture.svg
var architectureSVG string

// Box-drawing rendition for terminals
//
//go:embed architecture.txt
var architectureText string

// Asset is the illustration in every available rendition
type Asset struct {
	Title string
	SVG   string
	Text  string
}

// SVG returns the vector illustration
func SVG() string {
	return architectureSVG
}

// Text returns the terminal illustration without the trailing newline
func Text() string {
	return strings.TrimRight(architectureText, "\n")
}

// Architecture returns the system architecture asset
func Architecture() Asset {
	return Asset{Title: Title, SVG: SVG(), Text: Text()}
}

// For returns the asset to show with s, if any
func For(s catalog.Section) (Asset, bool) {
	if !s.Diagram {
		return Asset{}, false
	}
	return Architecture(), true
}
