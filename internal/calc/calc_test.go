package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expodocs/internal/domain"
)

func sampleRecord(typ domain.InvoiceType) *domain.InvoiceRecord {
	return &domain.InvoiceRecord{
		InvoiceType:    typ,
		Currency:       "USD",
		ExchangeRate:   83.5,
		TotalBoxes:     2,
		ShippingCost:   100,
		MultiplyRateBy: domain.RateBasisWeight,
		Items: []domain.InvoiceItem{
			{Description: "Lemongrass Oil", QtyKgs: 10, Pcs: 2, Rate: 25},
			{Description: "Vetiver Oil", QtyKgs: 5, Pcs: 1, Rate: 80},
		},
	}
}

func TestComputeIGST(t *testing.T) {
	rec := sampleRecord(domain.InvoiceTypeIGST)
	items, totals := Compute(rec)
	require.Len(t, items, 2)

	// 10kg * $25 = $250 -> INR 20875 -> IGST 3757.5
	assert.InDelta(t, 250, items[0].AmountForeign, 1e-9)
	assert.InDelta(t, 20875, items[0].AmountINR, 1e-9)
	assert.InDelta(t, 3757.5, items[0].IGST, 1e-9)
	assert.InDelta(t, 24632.5, items[0].TotalINR, 1e-9)

	assert.InDelta(t, 650, totals.AmountForeign, 1e-9)
	assert.InDelta(t, 54275, totals.AmountINR, 1e-9)
	assert.InDelta(t, 9769.5, totals.IGST, 1e-9)
	assert.InDelta(t, 64044.5, totals.TotalINR, 1e-9)
	assert.InDelta(t, 15, totals.Kgs, 1e-9)
	assert.Equal(t, 3, totals.Pcs)
	assert.Equal(t, 2, totals.Boxes)
}

func TestComputeLUTHasNoTax(t *testing.T) {
	rec := sampleRecord(domain.InvoiceTypeLUT)
	items, totals := Compute(rec)

	for _, it := range items {
		assert.Zero(t, it.IGST)
		assert.InDelta(t, it.AmountINR, it.TotalINR, 1e-9)
	}
	assert.Zero(t, totals.IGST)
	assert.InDelta(t, totals.AmountINR, totals.TotalINR, 1e-9)
}

func TestComputeRateBasisPieces(t *testing.T) {
	rec := sampleRecord(domain.InvoiceTypeLUT)
	rec.MultiplyRateBy = domain.RateBasisPieces
	items, _ := Compute(rec)

	// 2 pcs * $25 = $50
	assert.InDelta(t, 50, items[0].AmountForeign, 1e-9)
	assert.InDelta(t, 80, items[1].AmountForeign, 1e-9)
}

func TestFOBIsGoodsMinusShipping(t *testing.T) {
	rec := sampleRecord(domain.InvoiceTypeIGST)
	_, totals := Compute(rec)

	assert.InDelta(t, 550, totals.FOB, 1e-9)
	assert.InDelta(t, 550, totals.DisplayFOB(), 1e-9)
	assert.InDelta(t, 650, totals.TotalInvoiceValue(), 1e-9)
	assert.InDelta(t, 650, totals.CNF(), 1e-9)
}

func TestFOBFlooredForDisplayWhenShippingExceedsGoods(t *testing.T) {
	rec := sampleRecord(domain.InvoiceTypeIGST)
	rec.ShippingCost = 1000
	_, totals := Compute(rec)

	assert.InDelta(t, -350, totals.FOB, 1e-9)
	assert.Zero(t, totals.DisplayFOB())
	assert.InDelta(t, 1000, totals.TotalInvoiceValue(), 1e-9)
}

func TestZeroExchangeRateYieldsZeroINR(t *testing.T) {
	rec := sampleRecord(domain.InvoiceTypeIGST)
	rec.ExchangeRate = 0
	items, totals := Compute(rec)

	assert.InDelta(t, 250, items[0].AmountForeign, 1e-9)
	assert.Zero(t, items[0].AmountINR)
	assert.Zero(t, totals.AmountINR)
	assert.Zero(t, totals.IGST)
	assert.Zero(t, totals.TotalINR)
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"small number", 7, "USD", "SEVEN US DOLLARS ONLY"},
		{"teens", 15, "INR", "FIFTEEN INDIAN RUPEES ONLY"},
		{"tens with ones", 42, "GBP", "FORTY TWO BRITISH POUNDS ONLY"},
		{"hundreds with and", 215, "EUR", "TWO HUNDRED AND FIFTEEN EUROS ONLY"},
		{"thousands", 64045, "INR", "SIXTY FOUR THOUSAND FORTY FIVE INDIAN RUPEES ONLY"},
		{"millions", 2000000, "USD", "TWO MILLION US DOLLARS ONLY"},
		{"fraction is dropped", 99.6, "USD", "NINETY NINE US DOLLARS ONLY"},
		{"zero", 0, "INR", "ZERO"},
		{"sub-unit amount", 0.4, "USD", "ZERO"},
		{"unknown currency falls back", 5, "CHF", "FIVE DOLLARS ONLY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(tt.amount, tt.currency))
		})
	}
}
