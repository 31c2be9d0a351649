package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expodocs/internal/domain"
)

func TestBundle(t *testing.T) {
	out, err := NewZipBundler().Bundle([]domain.Artifact{
		{Kind: domain.DocInvoiceSheet, Filename: "IGST_INV_42_tokiwa.xlsx", Bytes: []byte("sheet-bytes")},
		{Kind: domain.DocInvoicePDF, Filename: "IGST_INV_42_tokiwa.pdf", Bytes: []byte("pdf-bytes")},
	})
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	require.Len(t, r.File, 2)

	names := []string{r.File[0].Name, r.File[1].Name}
	assert.Contains(t, names, "IGST_INV_42_tokiwa.xlsx")
	assert.Contains(t, names, "IGST_INV_42_tokiwa.pdf")

	rc, err := r.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
}

func TestBundleEmpty(t *testing.T) {
	out, err := NewZipBundler().Bundle(nil)
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	assert.Empty(t, r.File)
}
