package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/checktree/internal/checktree"
	"github.com/pelletier/go-toml/v2"
)

// TOMLParser reads a top-level title and [[items]] tables. Nested entries
// use [[items.items]].
type TOMLParser struct{}

func (p *TOMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	var raw struct {
		Title string           `toml:"title"`
		Items []checktree.Item `toml:"items"`
	}
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	doc := &Document{Title: titleFromFilename(filename), Items: raw.Items}
	if raw.Title != "" {
		doc.Title = raw.Title
	}
	return doc, nil
}
