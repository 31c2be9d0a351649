package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"expodocs/internal/calc"
	"expodocs/internal/domain"
)

const (
	fillHeader = "D9D9D9"
	fillLabel  = "F2F2F2"
	fillTotal  = "FFEB3B"
	fillValue  = "E6F3FF"
	fillRate   = "CCFFCC"
)

// BuildIGSTInvoice renders the commercial-cum-tax invoice sheet. All
// amounts come from calc; the builder only lays them out.
func BuildIGSTInvoice(rec *domain.InvoiceRecord) (*excelize.File, error) {
	items, totals := calc.Compute(rec)

	g := New("Invoice")
	g.ColWidths(16, 20, 15, 8, 6, 10, 12, 12, 8, 12, 14)

	label := Style{Bold: true, Size: 10, Fill: fillLabel, Borders: BAll}
	small := Style{Size: 9, Borders: BAll}
	smallLabel := Style{Bold: true, Size: 9, Fill: fillLabel, Borders: BAll}
	blank := Style{Borders: BAll}

	r := 1

	g.MergeSet(r, 1, r, 11, "COMMERCIAL CUM TAX INVOICE", Style{
		Size: 16, Bold: true, HAlign: "center", VAlign: "middle",
		Fill: fillHeader, Borders: BAll,
	})
	g.RowHeight(r, 25)
	r++

	g.MergeSet(r, 1, r, 11, "Supply Meant for Export Against Payment of Integrated Tax (IGST)", Style{
		Size: 10, Italic: true, HAlign: "center", VAlign: "middle", Borders: BAll,
	})
	r++

	g.MergeSet(r, 1, r, 5, "Exporter", label)
	g.MergeSet(r, 6, r, 8, "Invoice No. and Date", label)
	g.MergeSet(r, 9, r, 11, "Exporter's Ref", label)
	r++

	exporterDetails := fmt.Sprintf("%s\n%s\nPH: %s", rec.Exporter.Name, rec.Exporter.Address, rec.Exporter.Phone)
	if rec.Exporter.Fax != "" {
		exporterDetails += "\nFAX: " + rec.Exporter.Fax
	}
	g.MergeSet(r, 1, r+4, 5, exporterDetails, Style{Size: 9, Wrap: true, VAlign: "top", Borders: BAll})

	g.MergeSet(r, 6, r, 8, rec.InvoiceNumber, Style{Bold: true, Size: 11, Borders: BAll})
	g.MergeSet(r, 9, r, 11, "GSTIN NO: "+rec.Exporter.GSTIN, small)
	g.MergeSet(r+1, 6, r+1, 8, "DATED: "+rec.InvoiceDate, small)
	g.MergeSet(r+1, 9, r+1, 11, "IEC NO: "+rec.Exporter.IEC, small)
	g.MergeSet(r+2, 6, r+2, 8, "Buyer's order no. and date", small)
	g.MergeSet(r+2, 9, r+2, 11, "IGST REFUND BANK A/C", small)
	g.MergeSet(r+3, 6, r+3, 8, fmt.Sprintf("%s, DT: %s", rec.BuyerOrderNo, rec.BuyerOrderDate), small)
	g.MergeSet(r+3, 9, r+3, 11, rec.Exporter.BankName, small)
	g.MergeSet(r+4, 9, r+4, 11, "AC NO: "+rec.Exporter.AccountNo, small)
	r += 5

	g.MergeSet(r, 1, r, 5, "Consignee", label)
	g.MergeSet(r, 6, r, 11, "Buyer (if other than the consignee)", label)
	r++

	consignee := fmt.Sprintf("%s\n%s\nPh: %s", rec.Consignee.Name, rec.Consignee.Address, rec.Consignee.Phone)
	buyer := fmt.Sprintf("%s\n%s\nPh: %s", rec.Buyer.Name, rec.Buyer.Address, rec.Buyer.Phone)
	g.MergeSet(r, 1, r+4, 5, consignee, Style{Size: 9, Wrap: true, VAlign: "top", Borders: BAll})
	g.MergeSet(r, 6, r+4, 11, buyer, Style{Size: 9, Wrap: true, VAlign: "top", Borders: BAll})
	r += 5

	g.MergeSet(r, 1, r, 5, "Country of Origin of Goods", smallLabel)
	g.MergeSet(r, 6, r, 11, "Country of Final Destination", smallLabel)
	r++

	countryStyle := Style{Bold: true, Size: 10, HAlign: "center", Borders: BAll}
	g.MergeSet(r, 1, r, 5, rec.CountryOfOrigin, countryStyle)
	g.MergeSet(r, 6, r, 11, rec.CountryOfDestination, countryStyle)
	r++

	shippingRows := []struct{ label1, value1, label2, value2 string }{
		{"Terms of Delivery", rec.TermsOfDelivery, "Port of Loading", rec.PortOfLoading},
		{"Port of Discharge", rec.PortOfDischarge, "", ""},
		{"Product Description", rec.ProductDescription, "", ""},
	}
	for _, row := range shippingRows {
		g.Set(r, 1, row.label1, smallLabel)
		g.Set(r, 2, row.value1, small)
		g.Set(r, 3, "", blank)
		g.Paint(r, 4, blank)
		g.Paint(r, 5, blank)
		if row.label2 != "" {
			g.Set(r, 6, row.label2, smallLabel)
			g.Paint(r, 7, blank)
			g.MergeSet(r, 8, r, 10, row.value2, small)
			g.Paint(r, 11, blank)
		} else {
			for c := 6; c <= 11; c++ {
				g.Paint(r, c, blank)
			}
		}
		r++
	}

	headers := []string{
		"S.No", "Description of Goods", "QTY\n(kgs)", "Pcs",
		fmt.Sprintf("RATE\n(%s/KGS)", rec.Currency),
		fmt.Sprintf("Amount\n(%s)", rec.Currency),
		"Amount\n(INR)", "IGST\n%", "IGST\n(INR)", "TOTAL\n(INR)",
	}
	headStyle := Style{Bold: true, Size: 8, HAlign: "center", VAlign: "middle", Wrap: true, Fill: fillHeader, Borders: BAll}
	g.Set(r, 1, headers[0], headStyle)
	g.MergeSet(r, 2, r, 3, headers[1], headStyle)
	for i, h := range headers[2:] {
		g.Set(r, 4+i, h, headStyle)
	}
	g.RowHeight(r, 30)
	r++

	qtyFmt := Style{Size: 9, NumFmt: "0.000", HAlign: "right", Borders: BAll}
	moneyFmt := Style{Size: 9, NumFmt: "0.00", HAlign: "right", Borders: BAll}
	centered := Style{Size: 9, HAlign: "center", Borders: BAll}
	pctFmt := Style{Size: 9, NumFmt: "0", HAlign: "center", Borders: BAll}

	for i, it := range rec.Items {
		amounts := items[i]

		g.Set(r, 1, i+1, centered)

		desc := it.Description
		if rec.ShowExtraFields {
			if it.HSNCode != "" {
				desc += "\nHSN: " + it.HSNCode
			}
			if it.BatchNumber != "" {
				desc += "\nBatch: " + it.BatchNumber
			}
			if it.MfgDate != "" {
				desc += "\nMfg: " + it.MfgDate
			}
			if it.ExpDate != "" {
				desc += "\nExp: " + it.ExpDate
			}
			if it.BotanicalName != "" {
				desc += "\nBotanical: " + it.BotanicalName
			}
			if rec.TotalBoxes > 1 && it.BoxNumber > 0 {
				desc += fmt.Sprintf("\nBox: %d", it.BoxNumber)
			}
		}
		g.MergeSet(r, 2, r, 3, desc, Style{Size: 9, Wrap: true, VAlign: "top", Borders: BAll})

		g.Set(r, 4, it.QtyKgs, qtyFmt)
		g.Set(r, 5, it.Pcs, centered)
		g.Set(r, 6, it.Rate, moneyFmt)
		g.Set(r, 7, amounts.AmountForeign, moneyFmt)
		g.Set(r, 8, amounts.AmountINR, moneyFmt)
		g.Set(r, 9, calc.IGSTRate*100, pctFmt)
		g.Set(r, 10, amounts.IGST, moneyFmt)
		g.Set(r, 11, amounts.TotalINR, moneyFmt)

		if rec.ShowExtraFields {
			g.RowHeight(r, 60)
		} else {
			g.RowHeight(r, 20)
		}
		r++
	}

	totalBold := Style{Bold: true, Size: 9, Fill: fillTotal, Borders: BAll}
	g.Set(r, 1, "TOTAL", Style{Bold: true, Size: 10, HAlign: "center", Fill: fillTotal, Borders: BAll})
	g.MergeSet(r, 2, r, 3,
		fmt.Sprintf("%d PCS - Total %.3f KGS - %d BOX", totals.Pcs, totals.Kgs, totals.Boxes),
		totalBold)

	totalMoney := Style{Bold: true, Size: 9, NumFmt: "0.00", HAlign: "right", Fill: fillTotal, Borders: BAll}
	g.Set(r, 4, totals.Kgs, totalMoney)
	g.Set(r, 5, totals.Pcs, Style{Bold: true, Size: 9, HAlign: "center", Fill: fillTotal, Borders: BAll})
	g.Set(r, 6, "", totalBold)
	g.Set(r, 7, totals.AmountForeign, totalMoney)
	g.Set(r, 8, totals.AmountINR, totalMoney)
	g.Set(r, 9, "", totalBold)
	g.Set(r, 10, totals.IGST, totalMoney)
	g.Set(r, 11, totals.TotalINR, totalMoney)
	r++

	words := calc.AmountInWords(totals.AmountForeign, rec.Currency)
	g.MergeSet(r, 1, r, 11, "Amount Chargeable (in words): "+words, Style{Bold: true, Size: 9, Borders: BAll})
	r++

	sumLabel := Style{Bold: true, Size: 9, Borders: BAll}
	sumMoney := Style{Bold: true, Size: 9, NumFmt: "0.00", Borders: BAll}
	rightMoney := Style{Size: 9, NumFmt: "0.00", HAlign: "right", Borders: BAll}

	g.MergeSet(r, 1, r, 2, "FOB Value", sumLabel)
	g.Set(r, 3, totals.DisplayFOB(), sumMoney)
	g.MergeSet(r, 4, r, 8, "", blank)
	g.MergeSet(r, 9, r, 10, "Total Amount Before Tax", sumLabel)
	g.Set(r, 11, totals.AmountINR, rightMoney)
	r++

	g.MergeSet(r, 1, r, 2, "Shipping Cost", sumLabel)
	g.Set(r, 3, totals.ShippingCost, sumMoney)
	g.MergeSet(r, 4, r, 8, "", blank)
	g.MergeSet(r, 9, r, 10, "Add: IGST", sumLabel)
	g.Set(r, 11, totals.IGST, rightMoney)
	r++

	g.MergeSet(r, 1, r, 2, "Total Invoice Value", Style{Bold: true, Size: 10, Fill: fillValue, Borders: BAll})
	g.Set(r, 3, totals.TotalInvoiceValue(), Style{Bold: true, Size: 10, NumFmt: "0.00", Fill: fillValue, Borders: BAll})
	g.MergeSet(r, 4, r, 8, "", blank)
	g.MergeSet(r, 9, r, 10, "Total Amount After Tax", Style{Bold: true, Size: 10, Fill: fillTotal, Borders: BAll})
	g.Set(r, 11, totals.TotalINR, Style{Bold: true, Size: 10, NumFmt: "0.00", HAlign: "right", Fill: fillTotal, Borders: BAll})
	r++

	g.MergeSet(r, 4, r, 8, "", blank)
	g.MergeSet(r, 9, r, 10, "GST on Reverse Charge", small)
	g.Set(r, 11, "", blank)
	r++

	g.MergeSet(r, 1, r, 11,
		fmt.Sprintf("Value in %s: %.3f - EX RATE: %g = INR %.3f",
			rec.Currency, totals.AmountForeign, rec.ExchangeRate, totals.AmountINR),
		Style{Bold: true, Size: 10, HAlign: "center", Fill: fillRate, Borders: BAll})
	r++

	declaration := "Export Under Refund Claim of IGST\n\n" +
		"We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct.\n" +
		"The goods covered in this invoice have been made to order and specified by the buyer and not otherwise sold in the Indian Market."
	g.MergeSet(r, 1, r, 11, declaration, Style{Size: 9, Wrap: true, VAlign: "top", Borders: BAll})
	g.RowHeight(r, 60)
	r++

	g.MergeSet(r, 1, r, 6, "", blank)
	g.MergeSet(r, 7, r, 11, "For "+rec.Exporter.Name, Style{Bold: true, Size: 10, HAlign: "center", Borders: BAll})
	r++

	g.MergeSet(r, 1, r+2, 6, "", blank)
	g.MergeSet(r, 7, r+2, 11, "AUTHORISED SIGNATORY", Style{Bold: true, Size: 9, HAlign: "center", VAlign: "bottom", Borders: BAll})
	g.RowHeight(r+2, 40)

	if err := g.Flush(); err != nil {
		return nil, fmt.Errorf("igst invoice: %w", err)
	}
	return g.File(), nil
}
