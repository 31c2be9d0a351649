package domain

// InvoiceType selects the tax regime an invoice is rendered under.
type InvoiceType string

const (
	// InvoiceTypeIGST renders a commercial-cum-tax invoice with 18% integrated tax.
	InvoiceTypeIGST InvoiceType = "IGST"
	// InvoiceTypeLUT renders a zero-rated export invoice under a Letter of Undertaking.
	InvoiceTypeLUT InvoiceType = "LUT"
)

// Valid reports whether t is one of the two supported regimes.
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeIGST || t == InvoiceTypeLUT
}

// RateBasis is the per-invoice multiplier basis used to compute each item's
// amount from its unit rate.
type RateBasis string

const (
	RateBasisWeight RateBasis = "kgs"
	RateBasisPieces RateBasis = "pcs"
)

// DocumentKind identifies one generated artifact type within a render pass.
type DocumentKind string

const (
	DocInvoiceSheet   DocumentKind = "invoice_sheet"
	DocInvoicePDF     DocumentKind = "invoice_pdf"
	DocPackingList    DocumentKind = "packing_list"
	DocSLIFedEx       DocumentKind = "sli_fedex"
	DocSLIDHL         DocumentKind = "sli_dhl"
	DocAnnexure       DocumentKind = "annexure"
	DocCOA            DocumentKind = "coa"
	DocMSDS           DocumentKind = "msds_single"
	DocSDS            DocumentKind = "sds"
	DocIFRA           DocumentKind = "ifra"
	DocMSDSTwoColumn  DocumentKind = "msds_2column"
	DocNonHazardous   DocumentKind = "non_hazardous"
	DocNonHazardousV2 DocumentKind = "non_hazardous_v2"
	DocToxicControl   DocumentKind = "toxic_control"
	DocBundle         DocumentKind = "bundle"
)

// ContentTypeXLSX, ContentTypeDOCX and friends are the MIME types used when
// persisting generated artifacts.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeZip  = "application/zip"
)
