// Package pdf implements export.Renderer on top of gofpdf. It is the
// swappable document-rendering collaborator; the rest of the system only
// knows the Renderer contract.
package pdf

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/ukane-philemon/srms/internal/export"
)

// rowsPerPage is the table capacity of one A4 page below the title block.
const rowsPerPage = 40

var columnWidths = []float64{25, 95, 25, 45}

// Renderer implements export.Renderer.
type Renderer struct{}

// New returns a new PDF Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render lays the rows out as an A4 table, paginating past rowsPerPage rows
// and repeating the column headers on every page.
// Implements export.Renderer.
func (r *Renderer) Render(path string, title string, meta export.Meta, headers []string, rows [][]string) error {
	if len(headers) != len(columnWidths) {
		return fmt.Errorf("expected %d columns, got %d", len(columnWidths), len(headers))
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)

	// The core fonts are cp1252; translate UTF-8 text so non-ASCII names
	// render correctly.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")

	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Total students: %d", meta.TotalRecords), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Report %s, generated %s", meta.ReportID, meta.GeneratedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	doc.Ln(4)

	writeHeaders(doc, headers)
	for i, row := range rows {
		if i > 0 && i%rowsPerPage == 0 {
			doc.AddPage()
			writeHeaders(doc, headers)
		}

		doc.SetFont("Arial", "", 10)
		for col, cell := range row {
			doc.CellFormat(columnWidths[col], 7, tr(cell), "1", 0, "C", false, 0, "")
		}
		doc.Ln(-1)
	}

	err := doc.OutputFileAndClose(path)
	if err != nil {
		return fmt.Errorf("gofpdf output error: %w", err)
	}

	return nil
}

func writeHeaders(doc *gofpdf.Fpdf, headers []string) {
	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(75, 139, 190)
	doc.SetTextColor(255, 255, 255)
	for col, cell := range headers {
		doc.CellFormat(columnWidths[col], 8, cell, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)
	doc.SetTextColor(0, 0, 0)
}
