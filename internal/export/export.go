// Package export writes documentation pages to standalone files with
// pluggable exporters.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/n0roo/infradocs/internal/catalog"
	"github.com/n0roo/infradocs/internal/config"
	"github.com/n0roo/infradocs/internal/view"
)

// ErrUnsupportedFormat is returned for formats with no registered exporter
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents the export format type
type Format string

const (
	// FormatHTML is a self-contained HTML page
	FormatHTML Format = "html"
	// FormatMarkdown is a Markdown document
	FormatMarkdown Format = "markdown"
	// FormatJSON is the page model as JSON
	FormatJSON Format = "json"
)

// Document is what gets exported: one or more fully expanded tier pages
type Document struct {
	Title     string              `json:"title"`
	Pages     []view.Page         `json:"pages"`
	Footer    config.FooterConfig `json:"footer"`
	Generated time.Time           `json:"generated"`

	theme config.ThemeConfig
}

// Color returns the hex colour for a tier colour token
func (d Document) Color(token string) string {
	if v, ok := d.theme.Colors[token]; ok && v != "" {
		return v
	}
	if d.theme.Primary != "" {
		return d.theme.Primary
	}
	return "#2563EB"
}

// Exporter renders a Document into a file body
type Exporter interface {
	Export(doc Document) (string, error)
	// Name returns the human-readable name (e.g. "HTML")
	Name() string
	// FileExtension returns the extension including the dot
	FileExtension() string
}

// Manager manages all registered exporters
type Manager struct {
	exporters map[Format]Exporter
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewManager creates a manager with the built-in exporters registered
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		exporters: make(map[Format]Exporter),
		logger:    logger,
	}
	m.Register(FormatHTML, NewHTMLExporter())
	m.Register(FormatMarkdown, NewMarkdownExporter())
	m.Register(FormatJSON, NewJSONExporter())
	return m
}

// Register registers an exporter for a format, replacing any previous one
func (m *Manager) Register(format Format, exporter Exporter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exporters[format] = exporter
	m.logger.Debug("registered exporter",
		zap.String("format", string(format)),
		zap.String("name", exporter.Name()),
	)
}

// Get returns the exporter for format
func (m *Manager) Get(format Format) (Exporter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exporter, ok := m.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return exporter, nil
}

// Formats returns the registered formats in name order
func (m *Manager) Formats() []Format {
	m.mu.RLock()
	defer m.mu.RUnlock()

	formats := make([]Format, 0, len(m.exporters))
	for f := range m.exporters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Export renders doc in the given format
func (m *Manager) Export(doc Document, format Format) (string, error) {
	exporter, err := m.Get(format)
	if err != nil {
		return "", err
	}

	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("%s export failed: %w", exporter.Name(), err)
	}
	return content, nil
}

// ExportToFile renders doc and writes it to path, creating parent directories
func (m *Manager) ExportToFile(doc Document, format Format, path string) error {
	content, err := m.Export(doc, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output directory create failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("output write failed: %w", err)
	}

	m.logger.Info("document exported",
		zap.String("format", string(format)),
		zap.String("path", path),
		zap.Int("pages", len(doc.Pages)),
	)
	return nil
}

// Filename derives an output file name from the document title
func (m *Manager) Filename(doc Document, format Format) string {
	base := sanitizeFilename(doc.Title)
	if base == "" {
		base = "infradocs"
	}

	ext := ".txt"
	if exporter, err := m.Get(format); err == nil {
		ext = exporter.FileExtension()
	}
	return base + ext
}

// NewDocument builds a document with every section of the given tiers
// expanded. No tier keys means every tier in catalog order; a nil cfg
// uses the default theme and footer.
func NewDocument(cat *catalog.Catalog, cfg *config.Config, tierKeys ...string) (Document, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(tierKeys) == 0 {
		tierKeys = cat.Keys()
	}

	doc := Document{
		Title:     "MES Deployment Documentation",
		Footer:    cfg.Footer,
		Generated: time.Now(),
		theme:     cfg.Theme,
	}
	for _, key := range tierKeys {
		st, err := view.Expanded(cat, key)
		if err != nil {
			return Document{}, err
		}
		page, err := view.Build(cat, st)
		if err != nil {
			return Document{}, err
		}
		doc.Pages = append(doc.Pages, page)
	}

	if len(doc.Pages) == 1 {
		doc.Title = doc.Pages[0].Tier.Title
	}
	return doc, nil
}

// maxFilenameBytes caps the base name; cuts fall on a rune boundary
const maxFilenameBytes = 100

// sanitizeFilename replaces characters that are unsafe in file names
func sanitizeFilename(name string) string {
	unsafe := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " ", "(", ")", "&"}
	result := strings.ToLower(name)
	for _, char := range unsafe {
		result = strings.ReplaceAll(result, char, "-")
	}

	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	result = strings.Trim(result, "-")

	if len(result) > maxFilenameBytes {
		result = result[:maxFilenameBytes]
		for !utf8.ValidString(result) {
			result = result[:len(result)-1]
		}
	}
	return result
}
