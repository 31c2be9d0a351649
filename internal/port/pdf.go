package port

import "context"

// PDFRenderer converts a rendered HTML document into a PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}
