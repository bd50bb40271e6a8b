package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/checktree/internal/checktree"
)

// JSONParser reads either a bare array of items or an object with
// "title" and "items".
type JSONParser struct{}

func (p *JSONParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src = bytes.TrimSpace(src)

	doc := &Document{Title: titleFromFilename(filename)}
	if len(src) == 0 {
		return doc, nil
	}

	if src[0] == '[' {
		if err := json.Unmarshal(src, &doc.Items); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return doc, nil
	}

	var wrapper struct {
		Title string           `json:"title"`
		Items []checktree.Item `json:"items"`
	}
	if err := json.Unmarshal(src, &wrapper); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if wrapper.Title != "" {
		doc.Title = wrapper.Title
	}
	doc.Items = wrapper.Items
	return doc, nil
}
