// Package htmldoc renders the printable HTML form of an invoice. The HTML
// mirrors the spreadsheet layouts and pulls every figure from the shared
// calculator, so the two renditions of an invoice can never disagree.
package htmldoc

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"expodocs/internal/calc"
	"expodocs/internal/domain"
	"expodocs/internal/port"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Renderer turns invoice records into HTML and, through the injected
// converter, PDF bytes.
type Renderer struct {
	pdf port.PDFRenderer
}

func NewRenderer(pdf port.PDFRenderer) *Renderer {
	return &Renderer{pdf: pdf}
}

// InvoiceHTML renders the invoice matching its tax regime.
func InvoiceHTML(rec *domain.InvoiceRecord) (string, error) {
	name := "igst.html.tmpl"
	var view interface{}
	if rec.InvoiceType == domain.InvoiceTypeLUT {
		name = "lut.html.tmpl"
		view = newLUTView(rec)
	} else {
		view = newIGSTView(rec)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("htmldoc: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// InvoicePDF renders the invoice HTML and converts it to PDF.
func (r *Renderer) InvoicePDF(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	html, err := InvoiceHTML(rec)
	if err != nil {
		return nil, err
	}
	pdf, err := r.pdf.RenderPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: convert to PDF: %w", err)
	}
	return pdf, nil
}

type itemView struct {
	No            int
	Description   string
	Extras        []string
	CodeNo        string
	Qty           string
	Pcs           int
	Rate          string
	AmountForeign string
	AmountINR     string
	IGST          string
	Total         string
}

type igstView struct {
	Rec   *domain.InvoiceRecord
	Items []itemView

	Summary       string
	TotalKgs      string
	TotalPcs      int
	TotalForeign  string
	TotalINR      string
	TotalIGST     string
	TotalAfterTax string

	AmountInWords string
	FOB           string
	Shipping      string
	InvoiceValue  string
	ExchangeLine  string
}

func newIGSTView(rec *domain.InvoiceRecord) *igstView {
	items, totals := calc.Compute(rec)

	views := make([]itemView, len(rec.Items))
	for i, it := range rec.Items {
		var extras []string
		if rec.ShowExtraFields {
			extras = appendExtra(extras, "HSN", it.HSNCode)
			extras = appendExtra(extras, "Batch", it.BatchNumber)
			extras = appendExtra(extras, "Mfg", it.MfgDate)
			extras = appendExtra(extras, "Exp", it.ExpDate)
			extras = appendExtra(extras, "Botanical", it.BotanicalName)
		}
		views[i] = itemView{
			No:            i + 1,
			Description:   it.Description,
			Extras:        extras,
			Qty:           fmt.Sprintf("%.3f", it.QtyKgs),
			Pcs:           it.Pcs,
			Rate:          fmt.Sprintf("%.2f", it.Rate),
			AmountForeign: fmt.Sprintf("%.2f", items[i].AmountForeign),
			AmountINR:     fmt.Sprintf("%.2f", items[i].AmountINR),
			IGST:          fmt.Sprintf("%.2f", items[i].IGST),
			Total:         fmt.Sprintf("%.2f", items[i].TotalINR),
		}
	}

	return &igstView{
		Rec:   rec,
		Items: views,

		Summary:       fmt.Sprintf("%d PCS - %.3f KGS - %d BOX", totals.Pcs, totals.Kgs, totals.Boxes),
		TotalKgs:      fmt.Sprintf("%.3f", totals.Kgs),
		TotalPcs:      totals.Pcs,
		TotalForeign:  fmt.Sprintf("%.2f", totals.AmountForeign),
		TotalINR:      fmt.Sprintf("%.2f", totals.AmountINR),
		TotalIGST:     fmt.Sprintf("%.2f", totals.IGST),
		TotalAfterTax: fmt.Sprintf("%.2f", totals.TotalINR),

		AmountInWords: calc.AmountInWords(totals.AmountForeign, rec.Currency),
		FOB:           fmt.Sprintf("%.2f", totals.DisplayFOB()),
		Shipping:      fmt.Sprintf("%.2f", totals.ShippingCost),
		InvoiceValue:  fmt.Sprintf("%.2f", totals.TotalInvoiceValue()),
		ExchangeLine: fmt.Sprintf("Value in %s: %.3f - EX RATE: %s = INR %.3f",
			rec.Currency, totals.AmountForeign, formatRate(rec.ExchangeRate), totals.AmountINR),
	}
}

type lutView struct {
	Rec   *domain.InvoiceRecord
	Items []itemView

	ARNLine  string
	Summary  string
	TotalKgs string
	TotalPcs int
	Total    string

	Shipping       string
	CostOfMaterial string
	CNFTotal       string
	INRValue       string
	FinalTotal     string
}

func newLUTView(rec *domain.InvoiceRecord) *lutView {
	items, totals := calc.Compute(rec)

	views := make([]itemView, len(rec.Items))
	for i, it := range rec.Items {
		var extras []string
		if rec.ShowExtraFields {
			if it.BotanicalName != "" {
				extras = append(extras, "("+it.BotanicalName+")")
			}
			extras = appendExtra(extras, "Batch", it.BatchNumber)
		}
		views[i] = itemView{
			No:            i + 1,
			Description:   it.Description,
			Extras:        extras,
			CodeNo:        it.HSNCode,
			Qty:           fmt.Sprintf("%.2f", it.QtyKgs),
			Pcs:           it.Pcs,
			Rate:          fmt.Sprintf("$%.2f", it.Rate),
			AmountForeign: fmt.Sprintf("$%.2f", items[i].AmountForeign),
		}
	}

	arnLine := "UNDER LUT: ARN NO :: __________________"
	if rec.Exporter.ARNNo != "" {
		arnLine = fmt.Sprintf("UNDER LUT: ARN NO :: %s (ATTACHED)", rec.Exporter.ARNNo)
	}

	inrValue := calc.INRValue(rec, totals.TotalInvoiceValue())
	return &lutView{
		Rec:   rec,
		Items: views,

		ARNLine:  arnLine,
		Summary:  fmt.Sprintf("%d PCS / %.2f KGS - %d BOX", totals.Pcs, totals.Kgs, totals.Boxes),
		TotalKgs: fmt.Sprintf("%.2f", totals.Kgs),
		TotalPcs: totals.Pcs,
		Total:    fmt.Sprintf("$%.2f", totals.AmountForeign),

		Shipping:       fmt.Sprintf("$%.2f", totals.ShippingCost),
		CostOfMaterial: fmt.Sprintf("$%.2f", totals.DisplayFOB()),
		CNFTotal:       fmt.Sprintf("$%.2f", totals.TotalInvoiceValue()),
		INRValue:       fmt.Sprintf("₹%.2f", inrValue),
		FinalTotal:     fmt.Sprintf("₹%.2f", inrValue),
	}
}

func appendExtra(extras []string, label, v string) []string {
	if v == "" {
		return extras
	}
	return append(extras, label+": "+v)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
