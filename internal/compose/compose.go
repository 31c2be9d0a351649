// Package compose builds the Word-format compliance certificates that
// accompany an export invoice. Each document is a stored .docx template
// filled with tokens derived from the invoice record and, where needed,
// enrichment data for the lead product.
package compose

import (
	"context"
	"fmt"
	"strings"

	"expodocs/internal/dates"
	"expodocs/internal/docx"
	"expodocs/internal/domain"
	"expodocs/internal/enrich"
	"expodocs/internal/port"
	"expodocs/internal/units"
)

// Template object keys in the document store. The certificate-of-analysis
// key carries a historical misspelling; renaming it would orphan every
// deployed template bucket.
const (
	TemplateAnnexure       = "Annexure.docx"
	TemplateCOA            = "Certficate-Of-Analysis.docx"
	TemplateMSDS           = "ROSEMARY-OIL-MSDS.docx"
	TemplateSDS            = "LIME-OIL-SDS.docx"
	TemplateMSDSTwoColumn  = "MSDS_USA.docx"
	TemplateNonHazardous   = "Non-Hazardous-Certification.docx"
	TemplateNonHazardousV2 = "Non-Hazardous-Certification1.docx"
	TemplateToxicControl   = "Toxic_Control_Certification.docx"
	TemplateIFRA           = "CHAMPACA-LEAF-OIL-IFRA-51.docx"
)

// Composer renders compliance certificates. Enrichment runs through the
// caller-supplied provider, which is expected to never fail outright (see
// enrich.Chain), so certificate generation only fails on template problems.
type Composer struct {
	store    port.TemplateStore
	enricher port.EnrichmentProvider
}

func NewComposer(store port.TemplateStore, enricher port.EnrichmentProvider) *Composer {
	return &Composer{store: store, enricher: enricher}
}

// Compose renders the certificate identified by kind.
func (c *Composer) Compose(ctx context.Context, kind domain.DocumentKind, rec *domain.InvoiceRecord) ([]byte, error) {
	switch kind {
	case domain.DocAnnexure:
		return c.Annexure(ctx, rec)
	case domain.DocCOA:
		return c.COA(ctx, rec)
	case domain.DocMSDS:
		return c.MSDS(ctx, rec)
	case domain.DocMSDSTwoColumn:
		return c.MSDSTwoColumn(ctx, rec)
	case domain.DocSDS:
		return c.SDS(ctx, rec)
	case domain.DocIFRA:
		return c.IFRA(ctx, rec)
	case domain.DocNonHazardous:
		return c.NonHazardous(ctx, rec)
	case domain.DocNonHazardousV2:
		return c.NonHazardousV2(ctx, rec)
	case domain.DocToxicControl:
		return c.ToxicControl(ctx, rec)
	default:
		return nil, fmt.Errorf("compose: unsupported document kind %q", kind)
	}
}

// Annexure fills the customs annexure with the invoice header facts.
func (c *Composer) Annexure(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	return c.render(ctx, TemplateAnnexure, map[string]string{
		"InvoiceNo":       rec.InvoiceNumber,
		"TodayDate":       dates.Today(),
		"TermsOfDelivery": rec.TermsOfDelivery,
	})
}

// COA fills the certificate of analysis for the lead product.
func (c *Composer) COA(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	item := leadItem(rec)
	sds, err := c.enricher.SafetyData(ctx, item.Description)
	if err != nil {
		return nil, fmt.Errorf("compose: safety data for %q: %w", item.Description, err)
	}

	today := dates.Today()
	return c.render(ctx, TemplateCOA, map[string]string{
		"ProductName":        sds.ProductName,
		"BotanicalName":      orDefault(item.BotanicalName, sds.INCIName),
		"Lot":                enrich.LotNumber(),
		"MfgDate":            orDefault(item.MfgDate, today),
		"ExpiryDate":         orDefault(item.ExpDate, today),
		"CountryofOrigin":    orDefault(rec.CountryOfOrigin, "India"),
		"INCIName":           sds.INCIName,
		"CAS":                sds.CASNo,
		"Appearance":         sds.Appearance,
		"Odor":               sds.Odour,
		"Solubility":         sds.Solubility,
		"SpecificGravity":    sds.SpecificGravity,
		"OpticalRotation":    sds.OpticalRotation,
		"RefractiveIndex":    sds.RefractiveIndex,
		"FlashPoint":         sds.FlashPointC,
		"ExtractionMethod":   sds.ExtractionMethod,
		"ActiveConstituents": sds.ActiveConstituents,
	})
}

// MSDS fills the single-product material safety data sheet. Its token set is
// the COA's minus the manufacturing dates and INCI name.
func (c *Composer) MSDS(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	item := leadItem(rec)
	sds, err := c.enricher.SafetyData(ctx, item.Description)
	if err != nil {
		return nil, fmt.Errorf("compose: safety data for %q: %w", item.Description, err)
	}

	return c.render(ctx, TemplateMSDS, map[string]string{
		"ProductName":        sds.ProductName,
		"BotanicalName":      orDefault(item.BotanicalName, sds.INCIName),
		"Lot":                enrich.LotNumber(),
		"CountryofOrigin":    orDefault(rec.CountryOfOrigin, "India"),
		"CAS":                sds.CASNo,
		"Appearance":         sds.Appearance,
		"Odor":               sds.Odour,
		"Solubility":         sds.Solubility,
		"SpecificGravity":    sds.SpecificGravity,
		"OpticalRotation":    sds.OpticalRotation,
		"RefractiveIndex":    sds.RefractiveIndex,
		"FlashPoint":         sds.FlashPointC,
		"ExtractionMethod":   sds.ExtractionMethod,
		"ActiveConstituents": sds.ActiveConstituents,
	})
}

// MSDSTwoColumn fills the US-format sheet that lists the invoice's products
// in two numbered columns.
func (c *Composer) MSDSTwoColumn(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	left, right := splitTwoColumns(rec.Items)
	return c.render(ctx, TemplateMSDSTwoColumn, map[string]string{
		"ItemsLeftDescription":  left,
		"ItemsRightDescription": right,
	})
}

// SDS fills the full safety data sheet. The template family spells several
// properties both the British and American way, so both token forms are fed.
func (c *Composer) SDS(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	item := leadItem(rec)
	sds, err := c.enricher.SafetyData(ctx, item.Description)
	if err != nil {
		return nil, fmt.Errorf("compose: safety data for %q: %w", item.Description, err)
	}

	today := dates.Today()
	tokens := map[string]string{
		"ProductName":          sds.ProductName,
		"BiologicalDefinition": sds.BiologicalDefinition,
		"INCIName":             sds.INCIName,
		"CASNo":                sds.CASNo,
		"ECNo":                 sds.ECNo,
		"EINECSNo":             sds.EINECSNo,
		"Appearance":           sds.Appearance,
		"Colour":               sds.Colour,
		"Color":                sds.Colour,
		"Odour":                sds.Odour,
		"Odor":                 sds.Odour,
		"RelativeDensity":      sds.RelativeDensity,
		"FlashPointC":          sds.FlashPointC,
		"FlashPoint":           sds.FlashPointC,
		"RefractiveIndex":      sds.RefractiveIndex,
		"MeltingPointC":        sds.MeltingPointC,
		"BoilingPointC":        sds.BoilingPointC,
		"VapourPressure":       sds.VapourPressure,
		"VaporPressure":        sds.VapourPressure,
		"SolubilityInWater20C": sds.SolubilityInWater,
		"SolubilityInWater":    sds.SolubilityInWater,
		"AutoIgnitionTempC":    sds.AutoIgnitionTempC,
		"AutoIgnitionTemp":     sds.AutoIgnitionTempC,
		"Solubility":           sds.Solubility,
		"SpecificGravity":      sds.SpecificGravity,
		"OpticalRotation":      sds.OpticalRotation,
		"ExtractionMethod":     sds.ExtractionMethod,
		"ActiveConstituents":   sds.ActiveConstituents,
		"CountryOfOrigin":      orDefault(rec.CountryOfOrigin, "India"),
		"BotanicalName":        orDefault(item.BotanicalName, sds.INCIName),
		"Lot":                  enrich.LotNumber(),
		"MfgDate":              orDefault(item.MfgDate, today),
		"ExpiryDate":           orDefault(item.ExpDate, today),
		"RevisionDate":         today,
		"TodayDate":            today,
		"TodayDateby2":         dates.Format(dates.MonthsAgo(2)),
		"Constituents":         constituentLines(sds.Constituents),
	}
	return c.render(ctx, TemplateSDS, tokens)
}

// IFRA fills the IFRA 51st Amendment conformity certificate.
func (c *Composer) IFRA(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	item := leadItem(rec)
	sds, err := c.enricher.SafetyData(ctx, item.Description)
	if err != nil {
		return nil, fmt.Errorf("compose: safety data for %q: %w", item.Description, err)
	}
	comps, err := c.enricher.RestrictedComponents(ctx, item.Description)
	if err != nil {
		return nil, fmt.Errorf("compose: restricted components for %q: %w", item.Description, err)
	}

	return c.render(ctx, TemplateIFRA, map[string]string{
		"InvoiceNo":            rec.InvoiceNumber,
		"InvoiceDate":          rec.InvoiceDate,
		"ConsigneeName":        rec.Consignee.Name,
		"ConsigneeAddress":     rec.Consignee.Address,
		"ProductName":          sds.ProductName,
		"INCIName":             sds.INCIName,
		"RestrictedComponents": restrictedComponentLines(comps),
	})
}

// NonHazardous fills the dated non-hazardous cargo certificate.
func (c *Composer) NonHazardous(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	tokens := nonHazardousTokens(rec)
	tokens["TodayDate"] = dates.Today()
	return c.render(ctx, TemplateNonHazardous, tokens)
}

// NonHazardousV2 fills the undated variant of the certificate.
func (c *Composer) NonHazardousV2(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	return c.render(ctx, TemplateNonHazardousV2, nonHazardousTokens(rec))
}

// ToxicControl fills the toxic substances control declaration.
func (c *Composer) ToxicControl(ctx context.Context, rec *domain.InvoiceRecord) ([]byte, error) {
	return c.render(ctx, TemplateToxicControl, map[string]string{
		"Destination":      rec.CountryOfDestination,
		"ItemsDescription": numberedItems(rec.Items),
		"TodayDate":        dates.Today(),
	})
}

func (c *Composer) render(ctx context.Context, template string, tokens map[string]string) ([]byte, error) {
	raw, err := c.store.Get(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("compose: fetch template %s: %w", template, err)
	}
	out, err := docx.Render(raw, tokens)
	if err != nil {
		return nil, fmt.Errorf("compose: fill template %s: %w", template, err)
	}
	return out, nil
}

func nonHazardousTokens(rec *domain.InvoiceRecord) map[string]string {
	kgs := rec.TotalKgs()
	return map[string]string{
		"NoOfPackages":       fmt.Sprintf("%d", rec.TotalBoxes),
		"ProductName":        strings.ToUpper(orDefault(rec.ProductDescription, "ESSENTIAL OILS")),
		"NetWeight":          fmt.Sprintf("%.3f KGS NET", units.Round3(kgs)),
		"Destination":        rec.CountryOfDestination,
		"ConsigneeAddress":   rec.Consignee.Name + "\n" + rec.Consignee.Address,
		"Origin":             rec.CountryOfOrigin,
		"ProductDescription": orDefault(rec.ProductDescription, "ESSENTIAL OILS"),
		"TotalWeight":        fmt.Sprintf("%.3f KG", units.Round3(kgs)),
		"TotalBoxes":         fmt.Sprintf("%d", rec.TotalBoxes),
	}
}

// leadItem is the first line item, or a zero item when the record is empty.
// Validation upstream rejects empty invoices, so the zero case only guards
// direct composer use.
func leadItem(rec *domain.InvoiceRecord) domain.InvoiceItem {
	if len(rec.Items) == 0 {
		return domain.InvoiceItem{Description: rec.ProductDescription}
	}
	return rec.Items[0]
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// numberedItems renders item descriptions as "1. X\n2. Y".
func numberedItems(items []domain.InvoiceItem) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, it.Description)
	}
	return strings.Join(lines, "\n")
}

// splitTwoColumns numbers the items and splits them into balanced columns.
// The left column takes the extra entry on odd counts and the right column
// continues the numbering; both are padded to equal height so the template's
// side-by-side cells line up.
func splitTwoColumns(items []domain.InvoiceItem) (left, right string) {
	n := len(items)
	leftLen := (n + 1) / 2

	leftLines := make([]string, 0, leftLen)
	rightLines := make([]string, 0, n-leftLen)
	for i, it := range items {
		line := fmt.Sprintf("%d. %s", i+1, it.Description)
		if i < leftLen {
			leftLines = append(leftLines, line)
		} else {
			rightLines = append(rightLines, line)
		}
	}
	for len(rightLines) < len(leftLines) {
		rightLines = append(rightLines, "")
	}
	return strings.Join(leftLines, "\n"), strings.Join(rightLines, "\n")
}

// constituentLines flattens the constituent table into paired text lines,
// one identity line and one classification line per component.
func constituentLines(cs []domain.Constituent) string {
	lines := make([]string, 0, len(cs)*2)
	for _, c := range cs {
		lines = append(lines,
			fmt.Sprintf("%s%% %s CAS-No: %s; EC No.: %s", c.Percentage, c.Name, c.CASNo, c.ECNo),
			fmt.Sprintf("Classification (EC 1272/2008): %s", c.Classification),
		)
	}
	return strings.Join(lines, "\n")
}

// restrictedComponentLines flattens the IFRA component table into text lines.
func restrictedComponentLines(comps []domain.RestrictedComponent) string {
	lines := make([]string, len(comps))
	for i, rc := range comps {
		lines[i] = fmt.Sprintf("%s (CAS No. %s): %s, %s", rc.ComponentName, rc.CASNo, rc.PercentageLevel, rc.IFRAStandard)
	}
	return strings.Join(lines, "\n")
}
