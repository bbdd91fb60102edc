package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const pageWidth = 190.0

// PDF renders tables as a single A4 document with a header row.
type PDF struct {
	// Highlight optionally picks a fill colour for a row; ok=false leaves it plain.
	Highlight func(row map[string]string) (r, g, b int, ok bool)
}

func (PDF) ContentType() string { return "application/pdf" }
func (PDF) Extension() string   { return "pdf" }

func (p PDF) Render(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, ErrNoColumns
	}
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 15, 10)
	doc.AddPage()

	if t.Title != "" {
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 10, t.Title, "", 1, "L", false, 0, "")
		doc.Ln(3)
	}

	width := pageWidth / float64(len(t.Columns))
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for _, h := range t.headings() {
		doc.CellFormat(width, 8, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		fill := false
		if p.Highlight != nil {
			if r, g, b, ok := p.Highlight(row); ok {
				doc.SetFillColor(r, g, b)
				fill = true
			}
		}
		for _, cell := range t.record(row) {
			doc.CellFormat(width, 7, cell, "1", 0, "", fill, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
