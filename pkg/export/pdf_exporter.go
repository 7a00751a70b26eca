package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders draft documents into a paginated A4 PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document from an optional title and paragraph body.
func (e *PDFExporter) Render(doc Document) ([]byte, error) {
	if len(doc.Paragraphs) == 0 {
		return nil, fmt.Errorf("pdf requires at least one paragraph")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Times", "B", 14)
		pdf.MultiCell(0, 8, doc.Title, "", "C", false)
		pdf.Ln(6)
	}

	pdf.SetFont("Times", "", 12)
	for _, paragraph := range doc.Paragraphs {
		pdf.MultiCell(0, 6, paragraph, "", "J", false)
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
