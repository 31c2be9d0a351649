// Package extract turns uploaded documents into canonical invoice records.
// A provider produces a loosely-typed candidate; Normalize repairs it field
// by field so rendering never sees malformed input.
package extract

import (
	"fmt"
	"strings"

	"expodocs/internal/boxes"
	"expodocs/internal/dates"
	"expodocs/internal/domain"
	"expodocs/internal/units"
)

const defaultHSNCode = "33012990"

// Normalize converts an extraction candidate into a render-ready record.
// Missing fields get documented defaults, weights are converted to
// kilograms, and every item ends up with a valid box assignment. It fails
// only when the candidate carries no usable line items.
func Normalize(ext *domain.ExtractedInvoice) (*domain.InvoiceRecord, error) {
	items := normalizeItems(ext.Items)
	if len(items) == 0 {
		return nil, domain.ErrExtractionFailed
	}

	totalBoxes := units.Int(ext.TotalBoxes)
	if totalBoxes < 1 {
		totalBoxes = 1
	}
	for i := range items {
		if items[i].BoxNumber < 0 || items[i].BoxNumber > totalBoxes {
			items[i].BoxNumber = 0
		}
	}
	boxes.Resolve(items, totalBoxes)

	invoiceType := domain.InvoiceTypeIGST
	if strings.EqualFold(strings.TrimSpace(ext.InvoiceType), string(domain.InvoiceTypeLUT)) {
		invoiceType = domain.InvoiceTypeLUT
	}

	currency := strings.ToUpper(strings.TrimSpace(ext.Currency))
	if currency == "" {
		currency = "USD"
	}

	rec := &domain.InvoiceRecord{
		InvoiceNumber:  strings.TrimSpace(ext.InvoiceNumber),
		InvoiceDate:    orToday(ext.InvoiceDate),
		BuyerOrderNo:   strings.TrimSpace(ext.BuyerOrderNo),
		BuyerOrderDate: strings.TrimSpace(ext.BuyerOrderDate),
		InvoiceType:    invoiceType,

		Exporter: domain.Exporter{
			Name:      strings.TrimSpace(ext.ExporterName),
			Address:   strings.TrimSpace(ext.ExporterAddress),
			Phone:     collapsePhone(ext.ExporterPhone),
			Fax:       collapsePhone(ext.ExporterFax),
			ARNNo:     strings.TrimSpace(ext.ExporterARNNo),
			GSTIN:     strings.TrimSpace(ext.ExporterGSTIN),
			IEC:       strings.TrimSpace(ext.ExporterIEC),
			BankName:  strings.TrimSpace(ext.ExporterBank),
			AccountNo: strings.TrimSpace(ext.ExporterAccount),
		},
		Consignee: domain.Party{
			Name:    strings.TrimSpace(ext.ConsigneeName),
			Address: strings.TrimSpace(ext.ConsigneeAddress),
			Phone:   collapsePhone(ext.ConsigneePhone),
		},
		Buyer: domain.Party{
			Name:    strings.TrimSpace(ext.BuyerName),
			Address: strings.TrimSpace(ext.BuyerAddress),
			Phone:   collapsePhone(ext.BuyerPhone),
		},

		CountryOfOrigin:      strings.TrimSpace(ext.CountryOfOrigin),
		CountryOfDestination: strings.TrimSpace(ext.CountryOfDestination),
		PortOfLoading:        strings.TrimSpace(ext.PortOfLoading),
		PortOfDischarge:      strings.TrimSpace(ext.PortOfDischarge),
		TermsOfDelivery:      strings.TrimSpace(ext.TermsOfDelivery),
		ProductDescription:   strings.TrimSpace(ext.ProductDescription),

		Currency:     currency,
		ExchangeRate: units.Money(ext.ExchangeRate),
		TotalBoxes:   totalBoxes,
		ShippingCost: units.Money(ext.ShippingCost),

		MultiplyRateBy: domain.RateBasisWeight,
		Items:          items,
	}

	// When the buyer block is missing the consignee doubles as buyer.
	if rec.Buyer.Name == "" {
		rec.Buyer = rec.Consignee
	}

	return rec, nil
}

// normalizeItems repairs each candidate line and drops rows that carry no
// information at all.
func normalizeItems(ext []domain.ExtractedItem) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, 0, len(ext))
	for _, e := range ext {
		qty := units.WeightKg(e.Qty)
		pcs := units.Int(e.Pcs)
		rate := units.Money(e.Rate)

		desc := strings.TrimSpace(e.Description)
		if desc == "" && qty == 0 && pcs == 0 && rate == 0 {
			continue
		}
		if desc == "" {
			desc = fmt.Sprintf("Item %d", len(items)+1)
		}

		// Extractors occasionally read the two right-hand columns in the
		// wrong order. A unit rate below 10 next to a larger "piece count"
		// is that misread, so the values trade places.
		if pcs > int(rate) && rate > 0 && rate < 10 {
			pcs, rate = int(rate), float64(pcs)
		}

		hsn := strings.TrimSpace(e.HSNCode)
		if hsn == "" {
			hsn = defaultHSNCode
		}

		items = append(items, domain.InvoiceItem{
			Description:   desc,
			HSNCode:       hsn,
			QtyKgs:        qty,
			Pcs:           pcs,
			Rate:          rate,
			BatchNumber:   strings.TrimSpace(e.BatchNumber),
			MfgDate:       strings.TrimSpace(e.MfgDate),
			ExpDate:       strings.TrimSpace(e.ExpDate),
			BotanicalName: strings.TrimSpace(e.BotanicalName),
			BoxNumber:     units.Int(e.BoxNumber),
		})
	}
	return items
}

// collapsePhone squeezes runs of whitespace out of phone-style fields.
func collapsePhone(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func orToday(raw string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return dates.Today()
}
