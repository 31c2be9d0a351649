package grid

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"expodocs/internal/calc"
	"expodocs/internal/dates"
	"expodocs/internal/domain"
	"expodocs/internal/port"
)

// Shipper's letter of instruction templates carried in the template store.
const (
	TemplateSLIFedEx = "SLI-FedEx.xlsx"
	TemplateSLIDHL   = "NEW-DHL-SLI.xlsx"

	sheetSLIFedEx = "SLI dtd 10-Fed-2020"
	sheetSLIDHL   = "New SLI"
)

// Exporter constants printed on every shipping instruction form.
const (
	exporterPAN      = "AEOPT2938Q"
	exporterIFSC     = "HDFC0001902"
	stateOfOrigin    = "UTTAR PRADESH"
	districtOfOrigin = "KANNAUJ"
)

// RenderSLIFedEx fills the FedEx shipper's letter of instruction template.
func RenderSLIFedEx(ctx context.Context, store port.TemplateStore, rec *domain.InvoiceRecord) ([]byte, error) {
	_, totals := calc.Compute(rec)

	description := rec.ProductDescription
	if description == "" {
		description = "ESSENTIAL OILS"
	}

	tokens := map[string]string{
		"Date":               dates.Today(),
		"InvoiceNo":          rec.InvoiceNumber,
		"IECNo":              rec.Exporter.IEC,
		"InvoiceDate":        invoiceDateOrToday(rec),
		"ADCodeNo":           rec.Exporter.ADCode,
		"PANNo":              exporterPAN,
		"FOBCost":            fmt.Sprintf("%.2f", totals.DisplayFOB()),
		"FreightAmount":      fmt.Sprintf("%.2f", totals.ShippingCost),
		"TotalCFAmount":      fmt.Sprintf("%.2f", totals.TotalInvoiceValue()),
		"CurrencyCode":       rec.Currency,
		"CurrentACNo":        rec.Exporter.AccountNo,
		"IFSCCode":           exporterIFSC,
		"DescriptionOfGoods": description,
		"Destination":        rec.CountryOfDestination,
		"NoOfPackages":       fmt.Sprintf("%d", totals.Boxes),
		"NetWeight":          fmt.Sprintf("%.2f kgs NET", totals.Kgs),
		"StateOfOrigin":      stateOfOrigin,
		"DistrictOfOrigin":   districtOfOrigin,
		"ConsigneeName":      rec.Consignee.Name,
		"ConsigneeYellow":    rec.Consignee.Address,
	}

	return renderTemplate(ctx, store, TemplateSLIFedEx, sheetSLIFedEx, false, tokens)
}

// RenderSLIDHL fills the DHL shipper's letter of instruction template. The
// tax block tokens are populated only for IGST invoices; an LUT invoice
// leaves them blank.
func RenderSLIDHL(ctx context.Context, store port.TemplateStore, rec *domain.InvoiceRecord) ([]byte, error) {
	_, totals := calc.Compute(rec)

	var taxableAmount, igstRate, igstAmount, gstCess string
	if rec.InvoiceType == domain.InvoiceTypeIGST {
		taxableAmount = fmt.Sprintf("%.3f", totals.AmountINR)
		igstRate = "18%"
		igstAmount = fmt.Sprintf("%.3f", totals.IGST)
		gstCess = "0"
	}

	incoTerms := rec.TermsOfDelivery
	if incoTerms == "" {
		incoTerms = "CNF"
	}

	tokens := map[string]string{
		"InvoiceType":         string(rec.InvoiceType),
		"TaxableAmount":       taxableAmount,
		"IGSTRate":            igstRate,
		"IGSTAmount":          igstAmount,
		"GSTCess":             gstCess,
		"ShipperName":         rec.Exporter.Name,
		"ConsigneeName":       rec.Consignee.Name,
		"InvoiceNo":           rec.InvoiceNumber,
		"InvoiceDate":         invoiceDateOrToday(rec),
		"IECodeNo":            rec.Exporter.IEC,
		"PANNumber":           exporterPAN,
		"GSTINNumber":         rec.Exporter.GSTIN,
		"BankADCode":          rec.Exporter.ADCode,
		"IncoTerms":           incoTerms,
		"NatureOfPayment":     "AP",
		"FOBValue":            fmt.Sprintf("%.2f", totals.DisplayFOB()),
		"FreightIfAny":        fmt.Sprintf("%.2f", totals.ShippingCost),
		"InsuranceIfAny":      "0.00",
		"PackingCharges":      "0.00",
		"NoOfPkgs":            fmt.Sprintf("%d", totals.Boxes),
		"NetWT":               fmt.Sprintf("%.2f KGS NET", totals.Kgs),
		"StateOfOrigin":       stateOfOrigin,
		"DistrictOfOrigin":    districtOfOrigin,
		"SpecialInstructions": "We intend to claim the reward under RoDTPY Scheme",
	}

	return renderTemplate(ctx, store, TemplateSLIDHL, sheetSLIDHL, true, tokens)
}

func invoiceDateOrToday(rec *domain.InvoiceRecord) string {
	if rec.InvoiceDate != "" {
		return rec.InvoiceDate
	}
	return dates.Today()
}

// renderTemplate loads an xlsx template and substitutes {Token} placeholders
// in place. Only cells containing a brace are rewritten, so literal data
// cells pass through untouched.
func renderTemplate(ctx context.Context, store port.TemplateStore, name, sheet string, fallbackFirst bool, tokens map[string]string) ([]byte, error) {
	raw, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", name, err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", name, err)
	}
	defer f.Close()

	target := ""
	for _, s := range f.GetSheetList() {
		if s == sheet {
			target = s
			break
		}
	}
	if target == "" {
		if !fallbackFirst {
			return nil, fmt.Errorf("template %s sheet %q: %w", name, sheet, domain.ErrWorksheetNotFound)
		}
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("template %s: %w", name, domain.ErrWorksheetNotFound)
		}
		target = sheets[0]
	}

	if err := substituteTokens(f, target, tokens); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func substituteTokens(f *excelize.File, sheet string, tokens map[string]string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	for ri, row := range rows {
		for ci, val := range row {
			if !strings.Contains(val, "{") {
				continue
			}
			out := val
			for key, repl := range tokens {
				out = strings.ReplaceAll(out, "{"+key+"}", repl)
			}
			if out == val {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", ri+1, ci+1, err)
			}
			if err := f.SetCellStr(sheet, cell, out); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}
