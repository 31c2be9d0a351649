package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0"?><w:document><w:body>` +
	`<w:p><w:r><w:t>Product: {ProductName}</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>{ItemsDescription}</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Untouched {UnknownToken}</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func buildTemplate(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(documentXML))
	require.NoError(t, err)

	hdr, err := w.Create("word/header1.xml")
	require.NoError(t, err)
	_, err = hdr.Write([]byte(`<w:hdr><w:t>{ProductName}</w:t></w:hdr>`))
	require.NoError(t, err)

	other, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = other.Write([]byte(`<w:styles>{ProductName}</w:styles>`))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func readEntry(t *testing.T, archive []byte, name string) string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("entry %s not found", name)
	return ""
}

func TestRender(t *testing.T) {
	out, err := Render(buildTemplate(t), map[string]string{
		"ProductName":      "Lemongrass Oil <Extra>",
		"ItemsDescription": "1. Lemongrass Oil\n2. Vetiver Oil",
	})
	require.NoError(t, err)

	doc := readEntry(t, out, "word/document.xml")
	assert.Contains(t, doc, "Product: Lemongrass Oil &lt;Extra&gt;")
	assert.Contains(t, doc, "1. Lemongrass Oil</w:t><w:br/><w:t>2. Vetiver Oil")
	assert.Contains(t, doc, "{UnknownToken}")

	// Headers are document parts; styles are not.
	assert.Contains(t, readEntry(t, out, "word/header1.xml"), "Lemongrass Oil")
	assert.Contains(t, readEntry(t, out, "word/styles.xml"), "{ProductName}")
}

func TestRenderRejectsGarbage(t *testing.T) {
	_, err := Render([]byte("not a zip"), nil)
	assert.Error(t, err)
}
