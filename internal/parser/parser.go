package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/checktree/internal/checktree"
)

// Document is the checklist data read from a source file.
type Document struct {
	Title string           // From the document itself, or the filename
	Items []checktree.Item // Ready for checktree.Build

	// Checked lists leaf values the source marks as done, for formats
	// that can express it. It is applied with Select, so every leaf that
	// shares a marked value is checked, not only the marked one.
	Checked []string
}

// Parser converts raw file bytes into checklist items.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".json":     true,
	".yaml":     true,
	".yml":      true,
	".toml":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}, nil
	case ".yaml", ".yml":
		return &YAMLParser{}, nil
	case ".toml":
		return &TOMLParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outline builds nested items from a flat sequence of (level, item)
// entries, the way headings nest: each entry goes under the nearest
// preceding entry with a lower level.
type outline struct {
	root  checktree.Item
	stack []outlineEntry
}

type outlineEntry struct {
	item  *checktree.Item
	level int
	index int // Position among the parent's items
}

func newOutline() *outline {
	o := &outline{}
	o.stack = []outlineEntry{{item: &o.root, level: -1}}
	return o
}

// add appends item at level and returns a pointer to the stored copy so
// callers can attach children directly.
func (o *outline) add(level int, item checktree.Item) *checktree.Item {
	// Pop stack until we find a parent with lower level.
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].item
	parent.Items = append(parent.Items, item)
	index := len(parent.Items) - 1
	stored := &parent.Items[index]
	o.stack = append(o.stack, outlineEntry{item: stored, level: level, index: index})
	return stored
}

// path returns the index path of the innermost open entry.
func (o *outline) path() []int {
	out := make([]int, 0, len(o.stack)-1)
	for _, e := range o.stack[1:] {
		out = append(out, e.index)
	}
	return out
}

// current returns the innermost open entry, or the root.
func (o *outline) current() *checktree.Item {
	return o.stack[len(o.stack)-1].item
}

// resolveMarks turns index paths into the values of the leaves they
// point at. Paths that end on a branch are ignored.
func resolveMarks(items []checktree.Item, marks [][]int) []string {
	var values []string
	for _, path := range marks {
		level := items
		var hit *checktree.Item
		for _, i := range path {
			if i < 0 || i >= len(level) {
				hit = nil
				break
			}
			hit = &level[i]
			level = hit.Items
		}
		if hit != nil && len(hit.Items) == 0 {
			values = append(values, hit.Value)
		}
	}
	return values
}

func (o *outline) items() []checktree.Item {
	fillLabelValues(o.root.Items)
	return o.root.Items
}

// fillLabelValues gives valueless leaves their label as value, for formats
// that have no separate value syntax.
func fillLabelValues(items []checktree.Item) {
	for i := range items {
		if len(items[i].Items) > 0 {
			fillLabelValues(items[i].Items)
			continue
		}
		if items[i].Value == "" {
			items[i].Value = items[i].Label
		}
	}
}
