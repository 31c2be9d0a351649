package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"expodocs/internal/calc"
	"expodocs/internal/domain"
)

const timesFont = "Times New Roman"

// lutOpt mirrors the handful of knobs LUT cells vary on. Zero values give
// the sheet default: Arial 11, left/middle, full thin border.
type lutOpt struct {
	font      string
	size      float64
	bold      bool
	underline bool
	wrap      bool
	noBorder  bool
	h, v      string
}

func lutStyle(o lutOpt) Style {
	st := Style{
		Font: o.font, Size: o.size,
		Bold: o.bold, Underline: o.underline, Wrap: o.wrap,
		HAlign: o.h, VAlign: o.v,
	}
	if st.Size == 0 {
		st.Size = 11
	}
	if st.HAlign == "" {
		st.HAlign = "left"
	}
	if st.VAlign == "" {
		st.VAlign = "middle"
	}
	if !o.noBorder {
		st.Borders = BAll
	}
	return st
}

// BuildLUTInvoice renders the zero-rated export invoice issued under a
// Letter of Undertaking. The layout is mostly borderless in the item area,
// with outline and divider borders applied as a final pass.
func BuildLUTInvoice(rec *domain.InvoiceRecord) (*excelize.File, error) {
	_, totals := calc.Compute(rec)

	g := New("LUT-INVOICE")
	g.ColWidths(12, 21.55, 8.55, 17, 12.36, 10.64, 11.91, 12.27, 13.31)

	set := func(row, col int, val interface{}, o lutOpt) {
		g.Set(row, col, val, lutStyle(o))
	}
	merge := func(r1, c1, r2, c2 int, val interface{}, o lutOpt) {
		g.MergeSet(r1, c1, r2, c2, val, lutStyle(o))
	}
	blankRow := func(row int) {
		for c := 1; c <= 9; c++ {
			set(row, c, "", lutOpt{noBorder: true})
		}
	}

	r := 1

	merge(r, 1, r, 9, "EXPORTS INVOICE", lutOpt{h: "center", bold: true})
	r++

	merge(r, 1, r, 9, "SUPPLY MEANT FOR EXPORT UNDER LETTER OF UNDERTAKING WITHOUT PAYMENT OF IGST",
		lutOpt{h: "center", size: 14, bold: true, underline: true, font: "Calibri"})
	g.BorderRow(r, 1, 9)
	r++

	merge(r, 1, r, 4, "Exporter", lutOpt{bold: true, underline: true})
	merge(r, 5, r, 6, "INVOICE NO.", lutOpt{bold: true, underline: true})
	set(r, 7, "Exporter's Ref", lutOpt{bold: true, underline: true})
	g.AddEdges(r, 4, r, 4, BRight, true)
	g.AddEdges(r, 5, r, 5, BLeft, true)
	g.BorderRow(r, 1, 9)
	r++

	leftStart := r
	leftEnd := r + 4
	exporterDetails := fmt.Sprintf("%s\n%s\nPH: %s", rec.Exporter.Name, rec.Exporter.Address, rec.Exporter.Phone)
	if rec.Exporter.Fax != "" {
		exporterDetails += "\nFAX: " + rec.Exporter.Fax
	}
	exporterDetails += "\nGSTIN: " + rec.Exporter.GSTIN
	g.MergeSet(leftStart, 1, leftEnd, 4, exporterDetails, Style{Size: 9, Wrap: true, VAlign: "top", Borders: BAll})

	rr := leftStart
	set(rr, 5, rec.InvoiceNumber, lutOpt{bold: true})
	merge(rr, 6, rr, 7, "DT: "+rec.InvoiceDate, lutOpt{bold: true})
	set(rr, 8, "IEC", lutOpt{bold: true})
	set(rr, 9, rec.Exporter.IEC, lutOpt{})
	g.ClearEdges(rr, 7, rr, 7, BRight)
	g.ClearEdges(rr, 8, rr, 8, BLeft)
	g.BorderRow(rr, 1, 9)
	rr++

	merge(rr, 5, rr, 7, "ORDER DETAILS AND DATE", lutOpt{bold: true, underline: true})
	g.ClearEdges(rr, 7, rr, 7, BRight)
	g.ClearEdges(rr, 8, rr, 8, BLeft)
	g.BorderRow(rr, 1, 9)
	rr++

	merge(rr, 5, rr, 7, "ORDER VIA EMAIL", lutOpt{})
	g.ClearEdges(rr, 7, rr, 7, BRight)
	g.ClearEdges(rr, 8, rr, 8, BLeft)
	rr++

	merge(rr, 5, rr, 9, "", lutOpt{noBorder: true})
	rr++

	arnLabel := "UNDER LUT : ARN NO :: __________________"
	if rec.Exporter.ARNNo != "" {
		arnLabel = fmt.Sprintf("UNDER LUT : ARN NO :: %s (ATTACHED)", rec.Exporter.ARNNo)
	}
	merge(rr, 5, rr, 9, arnLabel, lutOpt{size: 12, bold: true, underline: true, wrap: true})
	rr++
	if rr <= leftEnd {
		merge(rr, 5, rr, 9, "", lutOpt{noBorder: true})
	}

	r = leftEnd + 1

	merge(r, 1, r, 4, "Consignee", lutOpt{bold: true, underline: true})
	r++
	consEnd := r + 4
	consignee := fmt.Sprintf("%s\n%s\nPh: %s", rec.Consignee.Name, rec.Consignee.Address, rec.Consignee.Phone)
	g.MergeSet(r, 1, consEnd, 4, consignee, Style{Size: 10, Wrap: true, VAlign: "top", Borders: BAll})
	g.BorderRow(consEnd, 1, 9)
	r = consEnd + 1

	// Logistics block. Header and value rows alternate, with the product
	// description spanning the right side.
	logisticsHeaderRow := r
	set(logisticsHeaderRow, 3, "Place of Receipt by Pre-carrier", lutOpt{font: timesFont})
	merge(logisticsHeaderRow, 5, logisticsHeaderRow, 6, "Country of Origin of Goods", lutOpt{font: timesFont})
	merge(logisticsHeaderRow, 7, logisticsHeaderRow, 9, "Country of Final Destination", lutOpt{font: timesFont})
	g.ClearEdges(logisticsHeaderRow, 1, logisticsHeaderRow, 9, BBottom)
	g.ClearEdges(logisticsHeaderRow, 5, logisticsHeaderRow, 5, BRight)

	countryRow := logisticsHeaderRow + 1
	set(countryRow, 2, "", lutOpt{noBorder: true})
	g.AddEdges(countryRow, 2, countryRow, 2, BRight, false)
	g.AddEdges(countryRow, 3, countryRow, 3, BLeft, false)
	g.AddEdges(countryRow, 4, countryRow, 4, BRight, false)
	g.AddEdges(countryRow, 5, countryRow, 5, BLeft, false)
	merge(countryRow, 5, countryRow, 6, rec.CountryOfOrigin, lutOpt{bold: true, h: "center"})
	merge(countryRow, 7, countryRow, 9, rec.CountryOfDestination, lutOpt{bold: true, h: "center"})
	g.ClearEdges(countryRow, 5, countryRow, 5, BRight|BTop)
	g.ClearEdges(countryRow, 6, countryRow, 6, BLeft|BTop)
	g.ClearEdges(countryRow, 8, countryRow, 9, BTop)
	g.AddEdges(countryRow, 1, countryRow, 7, BBottom, false)

	vesselHeaderRow := countryRow + 1
	merge(vesselHeaderRow, 1, vesselHeaderRow, 2, "Vessel/Flight No.", lutOpt{bold: true})
	merge(vesselHeaderRow, 3, vesselHeaderRow, 4, "Port of Loading", lutOpt{bold: true})
	g.ClearEdges(vesselHeaderRow, 1, vesselHeaderRow, 9, BBottom)

	vesselValueRow := vesselHeaderRow + 1
	merge(vesselValueRow, 3, vesselValueRow, 4, rec.PortOfLoading, lutOpt{})
	g.ClearEdges(vesselValueRow, 3, vesselValueRow, 4, BBottom)

	dischargeHeaderRow := vesselValueRow + 1
	merge(dischargeHeaderRow, 1, dischargeHeaderRow, 2, "Port OF Discharge", lutOpt{bold: true})
	merge(dischargeHeaderRow, 3, dischargeHeaderRow, 4, "Final Destination", lutOpt{bold: true})
	g.ClearEdges(dischargeHeaderRow, 1, dischargeHeaderRow, 9, BBottom)

	dischargeValueRow := dischargeHeaderRow + 1
	merge(dischargeValueRow, 3, dischargeValueRow, 4, rec.PortOfDischarge, lutOpt{})
	g.ClearEdges(dischargeValueRow, 3, dischargeValueRow, 4, BBottom)

	merge(vesselHeaderRow, 5, dischargeValueRow, 9, rec.ProductDescription,
		lutOpt{bold: true, h: "center", wrap: true, noBorder: true})

	r = dischargeValueRow + 1

	set(r, 1, "Marks & Nos.", lutOpt{font: timesFont})
	set(r, 2, "No. & Kind of pkgs.\nDescription of Goods", lutOpt{font: timesFont, wrap: true})
	set(r, 3, "", lutOpt{})
	set(r, 4, "Code No.", lutOpt{font: timesFont})
	set(r, 5, "Price /KGS", lutOpt{font: timesFont})
	set(r, 6, "QTY (Kg)", lutOpt{font: timesFont})
	set(r, 7, "Pcs", lutOpt{font: timesFont})
	set(r, 8, "", lutOpt{})
	set(r, 9, "Total Amount", lutOpt{font: timesFont, h: "center"})
	g.BorderRow(r, 1, 9)
	g.RowHeight(r, 33)
	r++

	merge(r, 1, r, 4, rec.ProductDescription, lutOpt{bold: true, noBorder: true})
	for c := 5; c <= 8; c++ {
		set(r, c, "", lutOpt{noBorder: true})
	}
	set(r, 9, fmt.Sprintf("%s/%s", rec.Currency, rec.TermsOfDelivery), lutOpt{bold: true, h: "center", noBorder: true})
	r++

	for i, it := range rec.Items {
		mult := it.QtyKgs
		if rec.MultiplyRateBy == domain.RateBasisPieces {
			mult = float64(it.Pcs)
		}
		amount := it.Rate * mult

		set(r, 1, i+1, lutOpt{h: "center", noBorder: true})
		merge(r, 2, r, 3, it.Description, lutOpt{size: 10, noBorder: true})
		set(r, 5, fmt.Sprintf("$ %.3f", it.Rate), lutOpt{h: "right", noBorder: true})
		g.Set(r, 6, it.QtyKgs, Style{Size: 11, NumFmt: "0.000", HAlign: "center", VAlign: "middle"})
		set(r, 7, it.Pcs, lutOpt{h: "center", noBorder: true})
		set(r, 8, "", lutOpt{noBorder: true})
		set(r, 9, fmt.Sprintf("$ %.3f", amount), lutOpt{h: "right", noBorder: true})
		g.RowHeight(r, 19)
		r++
	}

	merge(r, 2, r, 4, "Cost and Shipping Breakup for Importer", lutOpt{bold: true, underline: true, noBorder: true})
	r++
	set(r, 2, fmt.Sprintf("FOB : $ %.3f USD", totals.DisplayFOB()), lutOpt{bold: true, noBorder: true})
	r++
	merge(r, 2, r, 3, fmt.Sprintf("SHIPPING : $ %.3f USD", totals.ShippingCost), lutOpt{bold: true, noBorder: true})
	r++
	merge(r, 2, r, 3, fmt.Sprintf("TOTAL : $ %.3f USD", totals.TotalInvoiceValue()), lutOpt{bold: true, noBorder: true})
	r++

	merge(r, 3, r, 7, fmt.Sprintf("%d PCS/%.3f KGS", totals.Pcs, totals.Kgs), lutOpt{bold: true, h: "center", noBorder: true})
	r++
	merge(r, 3, r, 7, fmt.Sprintf("%d BOX", totals.Boxes), lutOpt{bold: true, underline: true, h: "center", noBorder: true})
	r++

	blankRow(r)
	g.BorderRow(r, 1, 9)
	r++

	for c := 1; c <= 7; c++ {
		set(r, c, "", lutOpt{})
	}
	set(r, 8, "CNF TOTAL", lutOpt{bold: true})
	set(r, 9, fmt.Sprintf("$ %.3f", totals.CNF()), lutOpt{bold: true, h: "right"})
	g.BorderRow(r, 1, 9)
	r++

	blankRow(r)
	r++

	for c := 1; c <= 6; c++ {
		set(r, c, "", lutOpt{noBorder: true})
	}
	merge(r, 7, r, 8, "FINAL TOTAL", lutOpt{bold: true, underline: true, noBorder: true})
	finalTotal := totals.TotalInvoiceValue()
	set(r, 9, fmt.Sprintf("$ %.3f", finalTotal), lutOpt{bold: true, underline: true, h: "right", noBorder: true})
	r++

	blankRow(r)
	r++

	merge(r, 1, r, 2, "DECLARATION", lutOpt{bold: true, noBorder: true, font: timesFont})
	for c := 3; c <= 6; c++ {
		set(r, c, "", lutOpt{noBorder: true})
	}
	set(r, 7, "INR VALUE", lutOpt{bold: true, noBorder: true, font: timesFont})
	merge(r, 8, r, 9, fmt.Sprintf("%.3f", calc.INRValue(rec, finalTotal)),
		lutOpt{bold: true, h: "right", noBorder: true, font: timesFont})
	r++

	merge(r, 1, r, 5, "1. Declaration note is inside the consignment packet.",
		lutOpt{wrap: true, noBorder: true, font: timesFont})
	r++
	merge(r, 1, r, 5, "2. All disputes Subjected to Kannauj (UP), INDIA Jurisdiction",
		lutOpt{wrap: true, noBorder: true, font: timesFont})
	r++

	rule3Start, rule3End := r, r+1
	merge(rule3Start, 1, rule3End, 6,
		"3. No Claim(s) on Shortage, Product damage, any kind of health damage during uses, Leakage of product will not be entertained after the goods leave our premises.",
		lutOpt{wrap: true, v: "top", font: timesFont, noBorder: true})
	merge(rule3Start, 7, rule3End, 9, "Authority Signature", lutOpt{h: "center", v: "top", bold: true, font: timesFont})
	r = rule3End + 1

	rule4Start, rule4End := r, r+1
	merge(rule4Start, 1, rule4End, 5,
		"4. We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct.",
		lutOpt{wrap: true, v: "top", font: timesFont, noBorder: true})

	sheetEndRow := rule4End

	g.Outline(1, 1, sheetEndRow, 9, false)
	g.Outline(rule3Start, 1, rule4End, 9, false)

	// Divider between rule text and the signature column.
	g.AddEdges(rule3Start, 6, rule4End, 6, BRight, false)
	g.AddEdges(rule3Start, 7, rule4End, 7, BLeft, false)

	g.ClearEdges(rule4Start, 5, rule4End, 5, BRight)
	g.ClearEdges(rule4Start, 6, rule4End, 6, BLeft)

	g.ClearEdges(rule3Start, 1, rule3Start, 6, BTop)
	g.ClearEdges(rule3End, 1, rule3End, 6, BBottom)
	g.AddEdges(rule3Start, 7, rule3Start, 9, BTop, false)

	for row := rule3Start; row <= rule4End; row++ {
		g.RowHeight(row, 24)
	}

	if err := g.Flush(); err != nil {
		return nil, fmt.Errorf("lut invoice: %w", err)
	}

	f := g.File()
	paper := 9
	orientation := "portrait"
	fit := 1
	if err := f.SetPageLayout("LUT-INVOICE", &excelize.PageLayoutOptions{
		Size: &paper, Orientation: &orientation, FitToWidth: &fit, FitToHeight: &fit,
	}); err != nil {
		return nil, fmt.Errorf("lut invoice: page layout: %w", err)
	}
	lr, tb, hf := 0.3, 0.4, 0.2
	if err := f.SetPageMargins("LUT-INVOICE", &excelize.PageLayoutMarginsOptions{
		Left: &lr, Right: &lr, Top: &tb, Bottom: &tb, Header: &hf, Footer: &hf,
	}); err != nil {
		return nil, fmt.Errorf("lut invoice: page margins: %w", err)
	}
	return f, nil
}
