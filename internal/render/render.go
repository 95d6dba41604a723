// Package render turns section content into typed display blocks.
//
// The content dialect is deliberately tiny: a line that is entirely wrapped in
// "**" is a heading, a line starting with "- " is a list item, a whitespace-only
// line is spacing, and everything else is a paragraph kept verbatim. Inline
// emphasis, links and nesting are not interpreted.
package render

import (
	"strings"
)

// Kind identifies the type of a display block
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindListItem
	KindBlank
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list_item"
	case KindBlank:
		return "blank"
	default:
		return "paragraph"
	}
}

// MarshalText lets blocks be emitted as JSON with readable kinds
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

const (
	boldMarker = "**"
	listPrefix = "- "
)

// Block is one rendered line of section content
type Block struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text,omitempty"`
}

// Heading returns a heading block
func Heading(text string) Block { return Block{Kind: KindHeading, Text: text} }

// ListItem returns a list item block
func ListItem(text string) Block { return Block{Kind: KindListItem, Text: text} }

// Paragraph returns a paragraph block
func Paragraph(text string) Block { return Block{Kind: KindParagraph, Text: text} }

// Blank returns a spacing block
func Blank() Block { return Block{Kind: KindBlank} }

// Render splits content into lines and classifies each one.
// The result always has exactly one block per line.
func Render(content string) []Block {
	lines := strings.Split(content, "\n")
	blocks := make([]Block, len(lines))
	for i, line := range lines {
		blocks[i] = Line(line)
	}
	return blocks
}

// Line classifies a single line. Rules are checked in order: heading, list item,
// blank, paragraph.
func Line(line string) Block {
	// "**" alone would match both ends with one marker
	if len(line) >= 2*len(boldMarker) &&
		strings.HasPrefix(line, boldMarker) &&
		strings.HasSuffix(line, boldMarker) {
		return Heading(line[len(boldMarker) : len(line)-len(boldMarker)])
	}

	if strings.HasPrefix(line, listPrefix) {
		return ListItem(line[len(listPrefix):])
	}

	if strings.TrimSpace(line) == "" {
		return Blank()
	}

	return Paragraph(line)
}

// PlainText lays blocks out for a plain terminal or a pipe
func PlainText(blocks []Block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		switch blk.Kind {
		case KindHeading:
			b.WriteString(strings.ToUpper(blk.Text))
		case KindListItem:
			b.WriteString("  • ")
			b.WriteString(blk.Text)
		case KindBlank:
		default:
			b.WriteString(blk.Text)
		}
	}
	return b.String()
}
