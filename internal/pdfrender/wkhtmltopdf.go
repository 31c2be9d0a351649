// Package pdfrender converts rendered invoice HTML into PDF bytes using the
// wkhtmltopdf binary.
package pdfrender

import (
	"context"
	"fmt"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"expodocs/internal/port"
)

// Converter implements port.PDFRenderer over wkhtmltopdf. The binary must be
// on PATH or named by the WKHTMLTOPDF_PATH environment variable.
type Converter struct{}

var _ port.PDFRenderer = (*Converter)(nil)

func NewConverter() *Converter {
	return &Converter{}
}

// RenderPDF converts one HTML document to an A4 portrait PDF with 8mm
// margins, matching the print layout the invoice templates were sized for.
func (c *Converter) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	gen, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("pdfrender: init wkhtmltopdf: %w", err)
	}

	gen.PageSize.Set(wkhtmltopdf.PageSizeA4)
	gen.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	gen.MarginTop.Set(8)
	gen.MarginBottom.Set(8)
	gen.MarginLeft.Set(8)
	gen.MarginRight.Set(8)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.DisableExternalLinks.Set(true)
	gen.AddPage(page)

	if err := gen.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("pdfrender: run wkhtmltopdf: %w", err)
	}
	return gen.Bytes(), nil
}
