package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/checktree/internal/checktree"
)

// CSVParser handles CSV files. The first row is a header. A column named
// "value" holds the leaf value; every other column is one tree level, left
// to right. Rows sharing leading labels merge into the same branch.
//
//	category,item,value
//	Fruit,Apple,apple
//	Fruit,Pear,pear
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &Document{Title: titleFromFilename(filename)}
	if len(records) == 0 {
		return doc, nil
	}

	// First row is headers.
	valueCol := -1
	var levelCols []int
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(h), "value") {
			valueCol = i
			continue
		}
		levelCols = append(levelCols, i)
	}

	var root checktree.Item
	for rowNum, row := range records[1:] {
		var labels []string
		for _, col := range levelCols {
			if col < len(row) {
				if l := strings.TrimSpace(row[col]); l != "" {
					labels = append(labels, l)
				}
			}
		}
		if len(labels) == 0 {
			continue
		}
		value := ""
		if valueCol >= 0 && valueCol < len(row) {
			value = strings.TrimSpace(row[valueCol])
		}

		parent := &root
		for depth, label := range labels {
			child := childByLabel(parent, label)
			if child == nil {
				parent.Items = append(parent.Items, checktree.Item{Label: label})
				child = &parent.Items[len(parent.Items)-1]
			}
			if depth == len(labels)-1 {
				if child.Value != "" && value != "" && child.Value != value {
					return nil, fmt.Errorf("parse csv: row %d: %q already has value %q", rowNum+2, label, child.Value)
				}
				if value != "" {
					child.Value = value
				}
			}
			parent = child
		}
	}

	doc.Items = root.Items
	fillLabelValues(doc.Items)
	return doc, nil
}

func childByLabel(parent *checktree.Item, label string) *checktree.Item {
	for i := range parent.Items {
		if parent.Items[i].Label == label {
			return &parent.Items[i]
		}
	}
	return nil
}
