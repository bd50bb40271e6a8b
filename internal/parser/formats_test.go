package parser

import (
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"list.json", false},
		{"list.YAML", false},
		{"list.yml", false},
		{"list.toml", false},
		{"list.txt", false},
		{"list.md", false},
		{"list.csv", false},
		{"list.htm", false},
		{"list.pdf", false},
		{"list.docx", false},
		{"list.xls", true},
		{"noext", true},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got parser %T", tt.filename, p)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.filename, err)
		}
		if !IsSupportedExtension(tt.filename) {
			t.Errorf("%s: expected supported extension", tt.filename)
		}
	}
}

func TestJSONParser(t *testing.T) {
	p := &JSONParser{}

	doc, err := p.Parse(strings.NewReader(`[{"label":"Fruit","items":[{"label":"Apple","value":"apple"}]}]`), "bare.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "bare" || len(doc.Items) != 1 || doc.Items[0].Items[0].Value != "apple" {
		t.Errorf("unexpected bare array result: %+v", doc)
	}

	doc, err = p.Parse(strings.NewReader(`{"title":"Shop","items":[{"label":"Milk","value":"milk"}]}`), "wrapped.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Shop" || len(doc.Items) != 1 {
		t.Errorf("unexpected wrapped result: %+v", doc)
	}

	// Values stay as written; missing ones are left for the builder to judge.
	doc, err = p.Parse(strings.NewReader(`[{"label":"Nameless"}]`), "raw.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Items[0].Value != "" {
		t.Errorf("expected empty value, got %q", doc.Items[0].Value)
	}

	if _, err := p.Parse(strings.NewReader(`[{"label":`), "bad.json"); err == nil {
		t.Error("expected error for truncated json")
	}
}

func TestYAMLParser(t *testing.T) {
	p := &YAMLParser{}

	input := `title: Weekend
items:
  - label: Chores
    items:
      - label: Dishes
        value: dishes
      - label: Laundry
        value: laundry
  - label: Rest
    value: rest
`
	doc, err := p.Parse(strings.NewReader(input), "weekend.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Weekend" {
		t.Errorf("expected title Weekend, got %q", doc.Title)
	}
	if len(doc.Items) != 2 || len(doc.Items[0].Items) != 2 {
		t.Fatalf("unexpected structure: %+v", doc.Items)
	}
	if doc.Items[0].Items[1].Value != "laundry" {
		t.Errorf("expected laundry, got %q", doc.Items[0].Items[1].Value)
	}

	doc, err = p.Parse(strings.NewReader("- label: Solo\n  value: solo\n"), "solo.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Items) != 1 || doc.Title != "solo" {
		t.Errorf("unexpected sequence result: %+v", doc)
	}

	doc, err = p.Parse(strings.NewReader(""), "empty.yaml")
	if err != nil {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
	if len(doc.Items) != 0 {
		t.Errorf("expected no items, got %d", len(doc.Items))
	}

	if _, err := p.Parse(strings.NewReader("just a string"), "scalar.yaml"); err == nil {
		t.Error("expected error for scalar document")
	}
}

func TestTOMLParser(t *testing.T) {
	input := `title = "Trip"

[[items]]
label = "Documents"

  [[items.items]]
  label = "Passport"
  value = "passport"

[[items]]
label = "Snacks"
value = "snacks"
`
	p := &TOMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "trip.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Trip" {
		t.Errorf("expected title Trip, got %q", doc.Title)
	}
	if len(doc.Items) != 2 || len(doc.Items[0].Items) != 1 {
		t.Fatalf("unexpected structure: %+v", doc.Items)
	}
	if doc.Items[0].Items[0].Value != "passport" {
		t.Errorf("expected passport, got %q", doc.Items[0].Items[0].Value)
	}

	if _, err := p.Parse(strings.NewReader("colour = \"red\"\n"), "bad.toml"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestCSVParser(t *testing.T) {
	input := "category,item,value\nFruit,Apple,apple\nFruit,Pear,pear\nBread,,\n"
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(input), "shop.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(doc.Items))
	}
	fruit := doc.Items[0]
	if fruit.Label != "Fruit" || len(fruit.Items) != 2 {
		t.Fatalf("expected Fruit with 2 children, got %+v", fruit)
	}
	if fruit.Items[1].Value != "pear" {
		t.Errorf("expected pear, got %q", fruit.Items[1].Value)
	}
	if doc.Items[1].Value != "Bread" {
		t.Errorf("expected label as value for Bread, got %q", doc.Items[1].Value)
	}
}

func TestCSVParser_ConflictingValue(t *testing.T) {
	input := "item,value\nApple,apple\nApple,green-apple\n"
	p := &CSVParser{}
	if _, err := p.Parse(strings.NewReader(input), "dup.csv"); err == nil {
		t.Fatal("expected error for conflicting values")
	}
}

func TestHTMLParser(t *testing.T) {
	input := `<html><head><title>Chores</title></head><body>
<p>Intro</p>
<ul>
  <li><input type="checkbox" id="c1" data-value="kitchen"><label for="c1">Kitchen</label>
    <ul>
      <li><input type="checkbox" data-value="dishes" checked><label>Dishes</label></li>
      <li><input type="checkbox" value="floor"><label>Floor</label></li>
    </ul>
  </li>
  <li>Garden</li>
</ul>
</body></html>`
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Chores" {
		t.Errorf("expected title Chores, got %q", doc.Title)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(doc.Items))
	}
	kitchen := doc.Items[0]
	if kitchen.Label != "Kitchen" || len(kitchen.Items) != 2 {
		t.Fatalf("unexpected kitchen item: %+v", kitchen)
	}
	if kitchen.Items[1].Value != "floor" {
		t.Errorf("expected value attribute to be used, got %q", kitchen.Items[1].Value)
	}
	if doc.Items[1].Label != "Garden" || doc.Items[1].Value != "Garden" {
		t.Errorf("expected plain text item, got %+v", doc.Items[1])
	}
	if strings.Join(doc.Checked, ",") != "dishes" {
		t.Errorf("expected checked [dishes], got %v", doc.Checked)
	}
}

func TestHTMLParser_NoList(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader("<p>nothing here</p>"), "empty.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Items) != 0 {
		t.Errorf("expected no items, got %d", len(doc.Items))
	}
}

func TestPagesToItems(t *testing.T) {
	single := pagesToItems(splitPages("- Milk\n\n- [x] Eggs = eggs\n"))
	if len(single) != 2 || single[1].Label != "Eggs" || single[1].Value != "eggs" {
		t.Errorf("expected flat single-page list, got %+v", single)
	}

	multi := pagesToItems(splitPages("Milk\n\fEggs\nFlour\n"))
	if len(multi) != 2 {
		t.Fatalf("expected 2 page branches, got %d", len(multi))
	}
	if multi[1].Label != "Page 2" || len(multi[1].Items) != 2 {
		t.Errorf("unexpected second page: %+v", multi[1])
	}
}
