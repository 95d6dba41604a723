package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/n0roo/infradocs/internal/render"
)

// MarkdownExporter exports a document to Markdown
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Name returns the human-readable name of this exporter
func (e *MarkdownExporter) Name() string {
	return "Markdown"
}

// FileExtension returns the file extension for Markdown files
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// Export renders doc as Markdown. The diagram is written as a fenced
// text block.
func (e *MarkdownExporter) Export(doc Document) (string, error) {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(doc.Title)
	sb.WriteString("\n")

	for _, p := range doc.Pages {
		sb.WriteString("\n## ")
		sb.WriteString(p.Tier.Title)
		sb.WriteString("\n")

		for _, s := range p.Sections {
			if !s.Expanded {
				continue
			}
			sb.WriteString("\n### ")
			sb.WriteString(s.Title)
			sb.WriteString("\n\n")

			if s.Diagram != nil {
				fmt.Fprintf(&sb, "**%s**\n\n```text\n%s\n```\n\n", s.Diagram.Title, s.Diagram.Text)
			}
			for _, blk := range s.Blocks {
				sb.WriteString(markdownLine(blk))
				sb.WriteString("\n")
			}
		}
	}

	if doc.Footer.Title != "" {
		sb.WriteString("\n---\n\n## ")
		sb.WriteString(doc.Footer.Title)
		sb.WriteString("\n\n")
		for _, c := range doc.Footer.Compliance {
			sb.WriteString("- ")
			sb.WriteString(c)
			sb.WriteString("\n")
		}
		if doc.Footer.Contact != "" {
			sb.WriteString("\n")
			sb.WriteString(doc.Footer.Contact)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func markdownLine(blk render.Block) string {
	switch blk.Kind {
	case render.KindHeading:
		return "#### " + blk.Text
	case render.KindListItem:
		return "- " + blk.Text
	case render.KindBlank:
		return ""
	default:
		return blk.Text
	}
}

// JSONExporter exports the document model as indented JSON
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Name returns the human-readable name of this exporter
func (e *JSONExporter) Name() string {
	return "JSON"
}

// FileExtension returns the file extension for JSON files
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// Export renders doc as JSON
func (e *JSONExporter) Export(doc Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json marshal failed: %w", err)
	}
	return string(data) + "\n", nil
}
