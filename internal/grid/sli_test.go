package grid

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"expodocs/internal/domain"
)

type stubStore map[string][]byte

func (s stubStore) Get(_ context.Context, name string) ([]byte, error) {
	b, ok := s[name]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return b, nil
}

func templateBytes(t *testing.T, sheet string) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetCellStr(sheet, "A1", "Invoice No: {InvoiceNo} dated {InvoiceDate}"))
	require.NoError(t, f.SetCellStr(sheet, "B2", "literal {braces} stay put"))
	require.NoError(t, f.SetCellStr(sheet, "C3", "IGST: {TaxableAmount} @ {IGSTRate}"))
	require.NoError(t, f.SetCellStr(sheet, "D4", "PAN {PANNo}{PANNumber}"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRenderSLIFedEx(t *testing.T) {
	store := stubStore{TemplateSLIFedEx: templateBytes(t, sheetSLIFedEx)}
	rec := testRecord(domain.InvoiceTypeIGST)

	out, err := RenderSLIFedEx(context.Background(), store, rec)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue(sheetSLIFedEx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice No: SEI-042 dated 12 MAY 2026", a1)

	b2, err := f.GetCellValue(sheetSLIFedEx, "B2")
	require.NoError(t, err)
	assert.Equal(t, "literal {braces} stay put", b2)

	d4, err := f.GetCellValue(sheetSLIFedEx, "D4")
	require.NoError(t, err)
	assert.Equal(t, "PAN AEOPT2938Q{PANNumber}", d4)
}

func TestRenderSLIFedExMissingWorksheet(t *testing.T) {
	store := stubStore{TemplateSLIFedEx: templateBytes(t, "Wrong Sheet")}
	_, err := RenderSLIFedEx(context.Background(), store, testRecord(domain.InvoiceTypeIGST))
	assert.True(t, errors.Is(err, domain.ErrWorksheetNotFound))
}

func TestRenderSLIDHLTaxBlock(t *testing.T) {
	t.Run("IGST fills tax tokens", func(t *testing.T) {
		store := stubStore{TemplateSLIDHL: templateBytes(t, sheetSLIDHL)}
		out, err := RenderSLIDHL(context.Background(), store, testRecord(domain.InvoiceTypeIGST))
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(out))
		require.NoError(t, err)
		defer f.Close()

		c3, err := f.GetCellValue(sheetSLIDHL, "C3")
		require.NoError(t, err)
		assert.Equal(t, "IGST: 54275.000 @ 18%", c3)
	})

	t.Run("LUT leaves tax tokens blank", func(t *testing.T) {
		store := stubStore{TemplateSLIDHL: templateBytes(t, sheetSLIDHL)}
		out, err := RenderSLIDHL(context.Background(), store, testRecord(domain.InvoiceTypeLUT))
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(out))
		require.NoError(t, err)
		defer f.Close()

		c3, err := f.GetCellValue(sheetSLIDHL, "C3")
		require.NoError(t, err)
		assert.Equal(t, "IGST:  @ ", c3)
	})

	t.Run("falls back to first worksheet", func(t *testing.T) {
		store := stubStore{TemplateSLIDHL: templateBytes(t, "Some Other Sheet")}
		out, err := RenderSLIDHL(context.Background(), store, testRecord(domain.InvoiceTypeLUT))
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})
}

func TestRenderSLIMissingTemplate(t *testing.T) {
	_, err := RenderSLIFedEx(context.Background(), stubStore{}, testRecord(domain.InvoiceTypeIGST))
	assert.True(t, errors.Is(err, domain.ErrTemplateNotFound))
}
