package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/n0roo/infradocs/internal/render"
	"github.com/n0roo/infradocs/internal/view"
)

//go:embed templates/document.html.tmpl
var documentTemplate string

var htmlTemplate = template.Must(template.New("document").Parse(documentTemplate))

// HTMLExporter exports a document to a self-contained HTML page
type HTMLExporter struct{}

// NewHTMLExporter creates a new HTML exporter
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// Name returns the human-readable name of this exporter
func (e *HTMLExporter) Name() string {
	return "HTML"
}

// FileExtension returns the file extension for HTML files
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

type htmlDocument struct {
	Title     string
	Generated string
	Pages     []htmlPage
	Footer    htmlFooter
}

type htmlFooter struct {
	Title      string
	Compliance []string
	Contact    string
}

type htmlPage struct {
	Key      string
	Title    string
	Color    string
	Sections []htmlSection
}

type htmlSection struct {
	ID           string
	Title        string
	DiagramTitle string
	Diagram      template.HTML
	Groups       []htmlGroup
}

// htmlGroup is a run of blocks drawn as one element. Consecutive list
// items share a <ul>.
type htmlGroup struct {
	Kind  string
	Text  string
	Items []string
}

// Export renders doc as HTML
func (e *HTMLExporter) Export(doc Document) (string, error) {
	data := htmlDocument{
		Title:     doc.Title,
		Generated: doc.Generated.Format("2006-01-02 15:04"),
		Footer: htmlFooter{
			Title:      doc.Footer.Title,
			Compliance: doc.Footer.Compliance,
			Contact:    doc.Footer.Contact,
		},
	}
	for _, p := range doc.Pages {
		data.Pages = append(data.Pages, htmlPageFor(doc, p))
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execute failed: %w", err)
	}
	return buf.String(), nil
}

func htmlPageFor(doc Document, p view.Page) htmlPage {
	page := htmlPage{
		Key:   p.Tier.Key,
		Title: p.Tier.Title,
		Color: doc.Color(p.Tier.Color),
	}
	for _, s := range p.Sections {
		if !s.Expanded {
			continue
		}
		hs := htmlSection{
			ID:     p.Tier.Key + "-" + s.Key,
			Title:  s.Title,
			Groups: groupBlocks(s.Blocks),
		}
		if s.Diagram != nil {
			hs.DiagramTitle = s.Diagram.Title
			// embedded asset, not user content
			hs.Diagram = template.HTML(s.Diagram.SVG)
		}
		page.Sections = append(page.Sections, hs)
	}
	return page
}

func groupBlocks(blocks []render.Block) []htmlGroup {
	var groups []htmlGroup
	for _, blk := range blocks {
		switch blk.Kind {
		case render.KindListItem:
			if n := len(groups); n > 0 && groups[n-1].Kind == "list" {
				groups[n-1].Items = append(groups[n-1].Items, blk.Text)
				continue
			}
			groups = append(groups, htmlGroup{Kind: "list", Items: []string{blk.Text}})
		case render.KindHeading:
			groups = append(groups, htmlGroup{Kind: "heading", Text: blk.Text})
		case render.KindBlank:
			groups = append(groups, htmlGroup{Kind: "blank"})
		default:
			groups = append(groups, htmlGroup{Kind: "paragraph", Text: blk.Text})
		}
	}
	return groups
}
