// Package docx fills {Token} placeholders inside Word document templates.
// It rewrites word/document.xml plus any headers and footers of the
// template archive; everything else is copied through byte for byte.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Render substitutes tokens into a docx template and returns the filled
// document. Values are XML-escaped and embedded newlines become Word line
// breaks, so multi-line values render as the caller wrote them.
func Render(template []byte, tokens map[string]string) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("docx: open template: %w", err)
	}

	var out bytes.Buffer
	w := zip.NewWriter(&out)

	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("docx: open %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("docx: read %s: %w", file.Name, err)
		}

		if isDocumentPart(file.Name) {
			content = substitute(content, tokens)
		}

		header := file.FileHeader
		fw, err := w.CreateHeader(&header)
		if err != nil {
			return nil, fmt.Errorf("docx: write %s: %w", file.Name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return nil, fmt.Errorf("docx: write %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("docx: close archive: %w", err)
	}
	return out.Bytes(), nil
}

func isDocumentPart(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	if !strings.HasSuffix(name, ".xml") {
		return false
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

func substitute(content []byte, tokens map[string]string) []byte {
	text := string(content)
	for key, val := range tokens {
		token := "{" + key + "}"
		if !strings.Contains(text, token) {
			continue
		}
		escaped := xmlEscaper.Replace(val)
		escaped = strings.ReplaceAll(escaped, "\n", "</w:t><w:br/><w:t>")
		text = strings.ReplaceAll(text, token, escaped)
	}
	return []byte(text)
}
