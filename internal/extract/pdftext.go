package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFText pulls the plain text out of a PDF so it can be handed to the
// extraction provider. Scanned PDFs with no text layer yield an empty
// string; callers surface that as an extraction failure.
func PDFText(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("extract: open pdf: %w", err)
	}

	var out bytes.Buffer
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract: read page %d: %w", pageNum, err)
		}
		out.WriteString(text)
		out.WriteString("\n")
	}
	return out.String(), nil
}
