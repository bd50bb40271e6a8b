package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/checktree/internal/checktree"
	"gopkg.in/yaml.v3"
)

// YAMLParser reads a sequence of items, or a mapping with title and items.
type YAMLParser struct{}

func (p *YAMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc := &Document{Title: titleFromFilename(filename)}

	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return doc, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return doc, nil
	}

	body := root.Content[0]
	switch body.Kind {
	case yaml.SequenceNode:
		if err := body.Decode(&doc.Items); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case yaml.MappingNode:
		var wrapper struct {
			Title string           `yaml:"title"`
			Items []checktree.Item `yaml:"items"`
		}
		if err := body.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if wrapper.Title != "" {
			doc.Title = wrapper.Title
		}
		doc.Items = wrapper.Items
	default:
		return nil, fmt.Errorf("parse yaml: expected a list or a mapping at line %d", body.Line)
	}
	return doc, nil
}
