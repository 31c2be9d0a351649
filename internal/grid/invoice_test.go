package grid

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"expodocs/internal/domain"
)

func testRecord(typ domain.InvoiceType) *domain.InvoiceRecord {
	return &domain.InvoiceRecord{
		InvoiceNumber: "SEI-042",
		InvoiceDate:   "12 MAY 2026",
		InvoiceType:   typ,
		Exporter: domain.Exporter{
			Name: "Shiva Exports India", Address: "35 Farsh Road, Kannauj", Phone: "+91 9838 332079",
			GSTIN: "09AEOPT2938Q1Z5", IEC: "0609004549", BankName: "HDFC BANK", AccountNo: "50200012345678",
			ARNNo: "AD090221000123X",
		},
		Consignee: domain.Party{Name: "Tokiwa Sangyo Ltd.", Address: "Sagamihara-shi, Kanagawa", Phone: "814-2766-1001"},
		Buyer:     domain.Party{Name: "Tokiwa Sangyo Ltd.", Address: "Sagamihara-shi, Kanagawa", Phone: "814-2766-1001"},

		CountryOfOrigin:      "INDIA",
		CountryOfDestination: "JAPAN",
		PortOfLoading:        "NEW DELHI",
		PortOfDischarge:      "TOKYO",
		TermsOfDelivery:      "CNF",
		ProductDescription:   "Essential Oils",

		Currency:       "USD",
		ExchangeRate:   83.5,
		TotalBoxes:     2,
		ShippingCost:   100,
		MultiplyRateBy: domain.RateBasisWeight,
		Items: []domain.InvoiceItem{
			{Description: "Lemongrass Oil", HSNCode: "33012990", QtyKgs: 10, Pcs: 2, Rate: 25, BoxNumber: 1},
			{Description: "Vetiver Oil", HSNCode: "33012990", QtyKgs: 5, Pcs: 1, Rate: 80, BoxNumber: 2},
		},
	}
}

// findCell scans a sheet for the first cell whose value contains want.
func findCell(t *testing.T, f *excelize.File, sheet, want string) (int, int) {
	t.Helper()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	for ri, row := range rows {
		for ci, val := range row {
			if strings.Contains(val, want) {
				return ri + 1, ci + 1
			}
		}
	}
	t.Fatalf("cell containing %q not found in sheet %s", want, sheet)
	return 0, 0
}

func TestBuildIGSTInvoice(t *testing.T) {
	rec := testRecord(domain.InvoiceTypeIGST)
	f, err := BuildIGSTInvoice(rec)
	require.NoError(t, err)

	title, err := f.GetCellValue("Invoice", "A1")
	require.NoError(t, err)
	assert.Equal(t, "COMMERCIAL CUM TAX INVOICE", title)

	totalRow, _ := findCell(t, f, "Invoice", "PCS - Total")
	summary, err := f.GetCellValue("Invoice", "B"+itoa(totalRow))
	require.NoError(t, err)
	assert.Equal(t, "3 PCS - Total 15.000 KGS - 2 BOX", summary)

	raw := excelize.Options{RawCellValue: true}
	gross, err := f.GetCellValue("Invoice", "G"+itoa(totalRow), raw)
	require.NoError(t, err)
	assert.Equal(t, "650", gross)
	igst, err := f.GetCellValue("Invoice", "J"+itoa(totalRow), raw)
	require.NoError(t, err)
	assert.Equal(t, "9769.5", igst)

	wordsRow, _ := findCell(t, f, "Invoice", "Amount Chargeable")
	words, err := f.GetCellValue("Invoice", "A"+itoa(wordsRow))
	require.NoError(t, err)
	assert.Equal(t, "Amount Chargeable (in words): SIX HUNDRED AND FIFTY US DOLLARS ONLY", words)

	fobRow, _ := findCell(t, f, "Invoice", "FOB Value")
	fob, err := f.GetCellValue("Invoice", "C"+itoa(fobRow), raw)
	require.NoError(t, err)
	assert.Equal(t, "550", fob)

	findCell(t, f, "Invoice", "Export Under Refund Claim of IGST")
	findCell(t, f, "Invoice", "EX RATE: 83.5")
}

func TestBuildIGSTInvoiceExtraFieldsInDescription(t *testing.T) {
	rec := testRecord(domain.InvoiceTypeIGST)
	rec.ShowExtraFields = true
	rec.Items[0].BatchNumber = "2026-05-00042"
	rec.Items[0].BotanicalName = "Cymbopogon flexuosus"

	f, err := BuildIGSTInvoice(rec)
	require.NoError(t, err)

	row, col := findCell(t, f, "Invoice", "Lemongrass Oil")
	assert.Equal(t, 2, col)
	cell, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	desc, err := f.GetCellValue("Invoice", cell)
	require.NoError(t, err)
	assert.Contains(t, desc, "HSN: 33012990")
	assert.Contains(t, desc, "Batch: 2026-05-00042")
	assert.Contains(t, desc, "Botanical: Cymbopogon flexuosus")
	assert.Contains(t, desc, "Box: 1")
}

func TestBuildLUTInvoice(t *testing.T) {
	rec := testRecord(domain.InvoiceTypeLUT)
	f, err := BuildLUTInvoice(rec)
	require.NoError(t, err)

	title, err := f.GetCellValue("LUT-INVOICE", "A1")
	require.NoError(t, err)
	assert.Equal(t, "EXPORTS INVOICE", title)

	findCell(t, f, "LUT-INVOICE", "WITHOUT PAYMENT OF IGST")
	findCell(t, f, "LUT-INVOICE", "UNDER LUT : ARN NO :: AD090221000123X (ATTACHED)")
	findCell(t, f, "LUT-INVOICE", "FOB : $ 550.000 USD")
	findCell(t, f, "LUT-INVOICE", "SHIPPING : $ 100.000 USD")
	findCell(t, f, "LUT-INVOICE", "TOTAL : $ 650.000 USD")
	findCell(t, f, "LUT-INVOICE", "3 PCS/15.000 KGS")

	cnfRow, _ := findCell(t, f, "LUT-INVOICE", "CNF TOTAL")
	cnf, err := f.GetCellValue("LUT-INVOICE", "I"+itoa(cnfRow))
	require.NoError(t, err)
	assert.Equal(t, "$ 650.000", cnf)

	finalRow, _ := findCell(t, f, "LUT-INVOICE", "FINAL TOTAL")
	final, err := f.GetCellValue("LUT-INVOICE", "I"+itoa(finalRow))
	require.NoError(t, err)
	assert.Equal(t, "$ 650.000", final)

	// INR VALUE = final total converted at the exchange rate.
	inrRow, _ := findCell(t, f, "LUT-INVOICE", "INR VALUE")
	inr, err := f.GetCellValue("LUT-INVOICE", "H"+itoa(inrRow))
	require.NoError(t, err)
	assert.Equal(t, "54275.000", inr)
}

func TestBuildPackingListGroupsBoxes(t *testing.T) {
	rec := testRecord(domain.InvoiceTypeIGST)
	rec.Items = append(rec.Items, domain.InvoiceItem{
		Description: "Palmarosa Oil", QtyKgs: 2.5, Pcs: 1, Rate: 40, BoxNumber: 1,
	})

	f, err := BuildPackingList(rec)
	require.NoError(t, err)

	title, err := f.GetCellValue("Packing List", "A1")
	require.NoError(t, err)
	assert.Equal(t, "PACKING LIST", title)

	box1Row, _ := findCell(t, f, "Packing List", "Box 1")
	box2Row, _ := findCell(t, f, "Packing List", "Box 2")
	assert.Less(t, box1Row, box2Row)

	// Box 1 holds lemongrass and palmarosa, so its net weight line reads
	// 12.500 KGS NET and sits above the Box 2 heading.
	netRow, _ := findCell(t, f, "Packing List", "12.500 KGS NET")
	assert.Greater(t, netRow, box1Row)
	assert.Less(t, netRow, box2Row)

	findCell(t, f, "Packing List", "5.000 KGS NET")
	findCell(t, f, "Packing List", "TOTAL : 17.50 Kgs , in 4 Pcs -2 BOXES")
	findCell(t, f, "Packing List", "Signature & Date")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
