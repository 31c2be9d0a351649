// Package calc is the single authority for invoice arithmetic. Every
// renderer (spreadsheet, HTML, packing list) consumes the amounts computed
// here; none recompute totals on their own.
package calc

import (
	"math"

	"expodocs/internal/domain"
)

// IGSTRate is the integrated tax rate applied to IGST invoices.
const IGSTRate = 0.18

// Item holds the derived amounts of one invoice line.
type Item struct {
	// AmountForeign is rate times the invoice's rate basis (kgs or pcs),
	// in the invoice currency.
	AmountForeign float64
	// AmountINR converts AmountForeign at the invoice exchange rate.
	AmountINR float64
	// IGST is the integrated tax on AmountINR. Zero for LUT invoices.
	IGST float64
	// TotalINR is AmountINR plus IGST.
	TotalINR float64
}

// Totals aggregates one invoice.
type Totals struct {
	Kgs   float64
	Pcs   int
	Boxes int

	AmountForeign float64
	AmountINR     float64
	IGST          float64
	TotalINR      float64

	ShippingCost float64

	// FOB is AmountForeign minus ShippingCost. The signed value is kept so
	// downstream consumers can detect shipping exceeding goods value; use
	// DisplayFOB for rendering.
	FOB float64
}

// DisplayFOB floors FOB at zero for presentation.
func (t Totals) DisplayFOB() float64 {
	if t.FOB < 0 {
		return 0
	}
	return t.FOB
}

// CNF is goods plus shipping in the invoice currency.
func (t Totals) CNF() float64 {
	return t.AmountForeign
}

// TotalInvoiceValue is the displayed FOB plus shipping.
func (t Totals) TotalInvoiceValue() float64 {
	return t.DisplayFOB() + t.ShippingCost
}

// Compute derives per-item amounts and invoice totals. A zero exchange rate
// produces zero INR conversions rather than an error; validation upstream
// rejects it before rendering.
func Compute(rec *domain.InvoiceRecord) ([]Item, Totals) {
	items := make([]Item, len(rec.Items))
	var t Totals

	for i, it := range rec.Items {
		mult := it.QtyKgs
		if rec.MultiplyRateBy == domain.RateBasisPieces {
			mult = float64(it.Pcs)
		}

		amountForeign := it.Rate * mult
		amountINR := amountForeign * rec.ExchangeRate

		var igst float64
		if rec.InvoiceType == domain.InvoiceTypeIGST {
			igst = amountINR * IGSTRate
		}

		items[i] = Item{
			AmountForeign: amountForeign,
			AmountINR:     amountINR,
			IGST:          igst,
			TotalINR:      amountINR + igst,
		}

		t.Kgs += it.QtyKgs
		t.Pcs += it.Pcs
		t.AmountForeign += amountForeign
		t.AmountINR += amountINR
		t.IGST += igst
		t.TotalINR += amountINR + igst
	}

	t.Boxes = rec.TotalBoxes
	if t.Boxes < 1 {
		t.Boxes = 1
	}
	t.ShippingCost = rec.ShippingCost
	t.FOB = t.AmountForeign - rec.ShippingCost

	return items, t
}

// INRValue converts an invoice-currency amount at the record's exchange rate.
func INRValue(rec *domain.InvoiceRecord, amount float64) float64 {
	return amount * rec.ExchangeRate
}

// RoundHalfUp rounds to the nearest integer, half away from zero.
func RoundHalfUp(v float64) int64 {
	return int64(math.Round(v))
}
