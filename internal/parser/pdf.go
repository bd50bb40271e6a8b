package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/checktree/internal/checktree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser turns printed checklists into items: one branch per page
// ("Page N"), one leaf per non-blank line. Single-page documents are flat.
// It tries the Go library first, then falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "checktree-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	doc := &Document{Title: titleFromFilename(filename)}
	doc.Items = pagesToItems(splitPages(text))
	fillLabelValues(doc.Items)
	return doc, nil
}

func pagesToItems(pages []string) []checktree.Item {
	var items []checktree.Item
	for i, page := range pages {
		lines := pageLines(page)
		if len(lines) == 0 {
			continue
		}
		items = append(items, checktree.Item{
			Label: fmt.Sprintf("Page %d", i+1),
			Items: lines,
		})
	}
	if len(items) == 1 {
		return items[0].Items
	}
	return items
}

func pageLines(page string) []checktree.Item {
	var out []checktree.Item
	for _, line := range strings.Split(page, "\n") {
		label, value, _ := splitOutlineLine(strings.TrimSpace(line))
		if label == "" {
			continue
		}
		out = append(out, checktree.Item{Label: label, Value: value})
	}
	return out
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		for _, row := range rows {
			for _, word := range row.Content {
				buf.WriteString(word.S)
			}
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func splitPages(text string) []string {
	return strings.Split(text, "\f")
}
