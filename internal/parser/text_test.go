package parser

import (
	"strings"
	"testing"
)

func TestTextParser_IndentedOutline(t *testing.T) {
	input := "Fruit\n  Apple = apple\n  Citrus\n    Lemon\n    Lime\nBread = bread\n"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(doc.Items))
	}

	fruit := doc.Items[0]
	if len(fruit.Items) != 2 {
		t.Fatalf("expected 2 children under Fruit, got %d", len(fruit.Items))
	}
	if fruit.Items[0].Label != "Apple" || fruit.Items[0].Value != "apple" {
		t.Errorf("expected Apple/apple, got %+v", fruit.Items[0])
	}
	if len(fruit.Items[1].Items) != 2 {
		t.Errorf("expected 2 citrus children, got %+v", fruit.Items[1])
	}
	if doc.Items[1].Value != "bread" {
		t.Errorf("expected bread value, got %q", doc.Items[1].Value)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if len(doc.Items) != 0 {
		t.Errorf("expected 0 items for empty input, got %d", len(doc.Items))
	}
}

func TestTextParser_BulletsAndTasks(t *testing.T) {
	input := "- Chores\n  - [x] Dishes\n  - [ ] Laundry\n* Errands\n\t+ [X] Bank\n"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "todo.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(doc.Items))
	}
	if got := doc.Items[0].Items[1].Label; got != "Laundry" {
		t.Errorf("expected markers stripped, got %q", got)
	}
	if got := doc.Items[1].Items[0].Label; got != "Bank" {
		t.Errorf("expected tab-indented child Bank, got %q", got)
	}
	if strings.Join(doc.Checked, ",") != "Dishes,Bank" {
		t.Errorf("expected checked [Dishes Bank], got %v", doc.Checked)
	}
}

func TestTextParser_BlankLinesDoNotBreakNesting(t *testing.T) {
	// Blank lines are skipped; only indentation decides the structure.
	input := "Para one\n\n\n  child\n\nPara two"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Items))
	}
	if len(doc.Items[0].Items) != 1 {
		t.Errorf("expected child under first item, got %+v", doc.Items[0])
	}
}

func TestTextParser_DedentToMiddleLevel(t *testing.T) {
	// A line indented between two open levels attaches to the shallower one.
	input := "A\n    B\n  C\n"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "odd.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Items) != 1 || len(doc.Items[0].Items) != 2 {
		t.Fatalf("expected A with children B and C, got %+v", doc.Items)
	}
}

func TestTextParser_TaskMarkOnDuplicateLabel(t *testing.T) {
	input := "Shop\n  [ ] Milk = whole\n  [x] Milk = skim\nShop\n  [x] Bread\n"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "shop.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"skim", "Bread"}
	if strings.Join(doc.Checked, ",") != strings.Join(want, ",") {
		t.Errorf("expected checked %v, got %v", want, doc.Checked)
	}
}
