package grid

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"expodocs/internal/boxes"
	"expodocs/internal/domain"
)

// BuildPackingList renders the box-grouped packing list. Items appear under
// their box heading in ascending box order; weights echo the invoice.
func BuildPackingList(rec *domain.InvoiceRecord) (*excelize.File, error) {
	groups := boxes.Groups(rec.Items)

	g := New("Packing List")
	g.ColWidths(8.55, 8.55, 11.09, 8.55, 8.55, 9.82, 9.64, 8.55, 18)

	base := Style{Font: timesFont, Size: 10}
	boldSt := Style{Font: timesFont, Size: 10, Bold: true}

	r := 1

	g.MergeSet(r, 1, r, 9, "PACKING LIST", Style{
		Font: timesFont, Size: 12, Bold: true, HAlign: "center", VAlign: "middle", Thick: BAll,
	})
	r++

	g.Set(r, 1, "Exporter", boldSt)
	g.Set(r, 6, "Pkg. List No", boldSt)
	g.Set(r, 8, "IEC", boldSt)
	g.Set(r, 9, rec.Exporter.IEC, base)
	g.AddEdges(r, 5, r, 5, BRight, true)
	g.Outline(r, 1, r, 9, true)
	r++

	exporterLines := []string{rec.Exporter.Name, rec.Exporter.Address}
	contact := "Ph: " + rec.Exporter.Phone
	if rec.Exporter.Fax != "" {
		contact += " | FAX: " + rec.Exporter.Fax
	}
	exporterLines = append(exporterLines, contact)
	g.MergeSet(3, 1, 7, 5, strings.Join(exporterLines, "\n"),
		Style{Font: timesFont, Size: 10, Wrap: true, VAlign: "top"})

	g.Set(3, 6, "Pkg List No", boldSt)
	g.Set(3, 7, rec.InvoiceNumber, Style{Font: timesFont, Size: 10, Borders: BBottom})
	g.Set(4, 6, "Date", Style{Font: timesFont, Size: 10, Bold: true, Borders: BAll})
	g.Set(4, 7, rec.InvoiceDate, Style{Font: timesFont, Size: 10, Borders: BAll})
	g.Set(5, 6, "Other Reference (s)", Style{Font: timesFont, Size: 10, Bold: true, Borders: BBottom})
	g.AddEdges(3, 5, 7, 5, BRight, true)
	g.Outline(2, 1, 7, 9, true)

	g.Set(8, 1, "Consignee", boldSt)
	g.Set(8, 6, "Buyer (if other than consignee)", boldSt)
	g.AddEdges(8, 5, 8, 5, BRight, true)
	g.Outline(8, 1, 8, 9, true)

	consigneeBlock := fmt.Sprintf("%s\n%s\nT: %s", rec.Consignee.Name, rec.Consignee.Address, rec.Consignee.Phone)
	g.MergeSet(9, 1, 15, 5, consigneeBlock, Style{Font: timesFont, Size: 10, Wrap: true, VAlign: "top"})

	g.Set(10, 6, "Country of Origin", boldSt)
	g.Set(10, 8, "Country of Final Destination", boldSt)
	g.Set(11, 6, rec.CountryOfOrigin, base)
	g.Set(11, 8, rec.CountryOfDestination, base)
	g.MergeSet(14, 6, 15, 9, rec.ProductDescription,
		Style{Font: timesFont, Size: 10, Bold: true, Wrap: true, HAlign: "center", VAlign: "middle"})
	g.AddEdges(9, 5, 15, 5, BRight, true)
	g.Outline(9, 1, 15, 9, true)
	g.RowHeight(15, 18)

	g.Set(16, 1, "Port Of Discharge", base)
	g.Set(16, 4, "Final Destination", base)
	g.Set(17, 4, rec.CountryOfDestination, base)
	g.AddEdges(16, 3, 17, 3, BRight, true)
	g.Outline(16, 1, 17, 9, true)

	headerRow := 18
	tableHead := Style{Font: timesFont, Size: 9, Bold: true, Wrap: true, HAlign: "center", VAlign: "middle", Borders: BAll}
	g.Set(headerRow, 1, "Marks & Nos.", tableHead)
	g.MergeSet(headerRow, 2, headerRow, 3, "No. & Kind of pkgs.\nDescription of Goods", tableHead)
	g.Set(headerRow, 4, "Code No.", tableHead)
	g.Set(headerRow, 7, "Qty (Bottle/s)", tableHead)
	g.Set(headerRow, 8, "Total Qty.(Kg)", tableHead)
	g.Set(headerRow, 9, "Final Total", tableHead)
	g.RowHeight(headerRow, 25)

	r = 19
	g.MergeSet(r, 1, r, 9, rec.ProductDescription,
		Style{Font: timesFont, Size: 10, Bold: true, HAlign: "center", VAlign: "middle", Borders: BAll})
	r++

	totalKgs := 0.0
	totalPcs := 0
	boxStartRow := r
	for _, group := range groups {
		g.MergeSet(r, 1, r, 3, fmt.Sprintf("Box %d", group.Box),
			Style{Font: timesFont, Size: 10, Bold: true, HAlign: "center", VAlign: "middle"})
		r++

		for idx, it := range group.Items {
			itemSt := Style{Font: timesFont, Size: 10, VAlign: "middle", HAlign: "left"}
			g.Set(r, 2, idx+1, itemSt)
			g.Set(r, 3, it.Description, itemSt)
			g.Set(r, 7, it.Pcs, itemSt)
			g.Set(r, 8, it.QtyKgs, itemSt)
			g.Set(r, 9, fmt.Sprintf("%.3f", it.QtyKgs), itemSt)

			totalPcs += it.Pcs
			totalKgs += it.QtyKgs
			r++
		}

		g.Set(r, 9, fmt.Sprintf("%.3f KGS NET", group.Kgs()),
			Style{Font: timesFont, Size: 10, Bold: true, HAlign: "center", VAlign: "middle"})
		r++
		r++ // blank spacer under each box
	}
	g.Outline(boxStartRow, 1, r-1, 9, true)

	r += 2
	g.Set(r, 9, fmt.Sprintf("%.3f KGS NET", totalKgs),
		Style{Font: timesFont, Size: 10, Bold: true, HAlign: "center", VAlign: "middle"})

	r += 2
	g.MergeSet(r, 1, r, 8,
		fmt.Sprintf("TOTAL : %.2f Kgs , in %d Pcs -%d BOXES", totalKgs, totalPcs, len(groups)),
		Style{Font: timesFont, Size: 10, Bold: true, HAlign: "center", VAlign: "middle", Borders: BAll})
	g.Paint(r, 9, Style{Borders: BAll})
	r++

	r += 2
	g.Set(r, 1, "All Dispute Subjected Delhi Jurisdiction", base)
	r++
	g.Set(r, 1, "No Claim or Shortage, damage, Leakage,etc will be", base)
	r++
	g.Set(r, 1, "entertained after the goods leave our premises", base)
	r++

	declRow := r
	g.Set(declRow, 1, "Declaration :", boldSt)
	g.MergeSet(declRow, 7, declRow+2, 9, "Signature & Date",
		Style{Font: timesFont, Size: 10, Bold: true, HAlign: "center", VAlign: "middle"})
	// Signature box stays open at the bottom until the declaration ends.
	g.AddEdges(declRow, 7, declRow, 9, BTop, true)
	g.AddEdges(declRow, 7, declRow+2, 7, BLeft, true)
	g.AddEdges(declRow, 9, declRow+2, 9, BRight, true)
	g.RowHeight(declRow, 15)
	r++

	g.Set(r, 1, "We declare that this invoice shows the actual price of the goods", base)
	r++
	g.Set(r, 1, "described and that all particulars are true and correct.", base)
	r++

	g.AddEdges(r, 7, r, 9, BBottom, true)

	lastRow := r
	g.Outline(1, 1, lastRow, 9, true)

	fixedHeights := map[int]bool{1: true, 15: true, headerRow: true, declRow: true}
	g.RowHeight(1, 20)
	for row := 2; row <= lastRow; row++ {
		if !fixedHeights[row] {
			g.RowHeight(row, 16)
		}
	}

	if err := g.Flush(); err != nil {
		return nil, fmt.Errorf("packing list: %w", err)
	}

	f := g.File()
	paper := 9
	orientation := "portrait"
	if err := f.SetPageLayout("Packing List", &excelize.PageLayoutOptions{
		Size: &paper, Orientation: &orientation,
	}); err != nil {
		return nil, fmt.Errorf("packing list: page layout: %w", err)
	}
	return f, nil
}
