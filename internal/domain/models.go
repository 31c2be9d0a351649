package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exporter holds the exporting party's identity and regulatory identifiers.
type Exporter struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Fax       string `json:"fax,omitempty"`
	ADCode    string `json:"adCode,omitempty"`
	ARNNo     string `json:"arnNo,omitempty"`
	GSTIN     string `json:"gstin"`
	IEC       string `json:"iec"`
	BankName  string `json:"bankName"`
	AccountNo string `json:"accountNo"`
}

// Party is a consignee or buyer block. The buyer may duplicate the consignee;
// renderers treat the two as independent records.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// InvoiceItem is one invoice line. Weight is always kilograms.
// BoxNumber zero means unassigned until box resolution runs.
type InvoiceItem struct {
	Description   string  `json:"description"`
	HSNCode       string  `json:"hsnCode"`
	QtyKgs        float64 `json:"qtyKgs"`
	Pcs           int     `json:"pcs"`
	Rate          float64 `json:"rate"`
	BatchNumber   string  `json:"batchNumber,omitempty"`
	MfgDate       string  `json:"mfgDate,omitempty"`
	ExpDate       string  `json:"expDate,omitempty"`
	BotanicalName string  `json:"botanicalName,omitempty"`
	BoxNumber     int     `json:"boxNumber,omitempty"`
}

// InvoiceRecord is the canonical representation of one invoice. It is
// assembled once per submission and treated as read-only during rendering.
type InvoiceRecord struct {
	InvoiceNumber  string `json:"invoiceNumber"`
	InvoiceDate    string `json:"invoiceDate"`
	BuyerOrderNo   string `json:"buyerOrderNo,omitempty"`
	BuyerOrderDate string `json:"buyerOrderDate,omitempty"`

	InvoiceType InvoiceType `json:"invoiceType"`

	Exporter  Exporter `json:"exporter"`
	Consignee Party    `json:"consignee"`
	Buyer     Party    `json:"buyer"`

	CountryOfOrigin      string `json:"countryOfOrigin"`
	CountryOfDestination string `json:"countryOfDestination"`
	PortOfLoading        string `json:"portOfLoading"`
	PortOfDischarge      string `json:"portOfDischarge"`
	VesselFlightNo       string `json:"vesselFlightNo,omitempty"`
	TermsOfDelivery      string `json:"termsOfDelivery"`
	ProductDescription   string `json:"productDescription"`

	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchangeRate"`
	TotalBoxes   int     `json:"totalBoxes"`
	ShippingCost float64 `json:"shippingCost,omitempty"`

	MultiplyRateBy  RateBasis `json:"multiplyRateBy"`
	ShowExtraFields bool      `json:"showExtraFields"`

	Items []InvoiceItem `json:"items"`
}

// TotalPcs sums piece counts across line items.
func (r *InvoiceRecord) TotalPcs() int {
	total := 0
	for _, it := range r.Items {
		total += it.Pcs
	}
	return total
}

// TotalKgs sums weights across line items.
func (r *InvoiceRecord) TotalKgs() float64 {
	total := 0.0
	for _, it := range r.Items {
		total += it.QtyKgs
	}
	return total
}

// DocumentSettings selects which optional documents a render pass produces.
// The invoice spreadsheet and PDF are always generated.
type DocumentSettings struct {
	PackingList    bool `json:"packingList"`
	SLIFedEx       bool `json:"sliFedex"`
	SLIDHL         bool `json:"sliDhl"`
	Annexure       bool `json:"annexure"`
	COA            bool `json:"coa"`
	MSDS           bool `json:"msds"`
	MSDSTwoColumn  bool `json:"msds2Column"`
	SDS            bool `json:"sds"`
	IFRA           bool `json:"ifra"`
	NonHazardous   bool `json:"nonHazardous"`
	NonHazardousV2 bool `json:"nonHazardousV2"`
	ToxicControl   bool `json:"toxicControl"`
}

// ExtractedItem is one line item as reported by the extraction provider.
// Every field is best-effort; normalization fills the gaps.
type ExtractedItem struct {
	Description   string `json:"description,omitempty"`
	HSNCode       string `json:"hsnCode,omitempty"`
	Qty           string `json:"qty,omitempty"`
	Pcs           string `json:"pcs,omitempty"`
	Rate          string `json:"rate,omitempty"`
	BatchNumber   string `json:"batchNumber,omitempty"`
	MfgDate       string `json:"mfgDate,omitempty"`
	ExpDate       string `json:"expDate,omitempty"`
	BotanicalName string `json:"botanicalName,omitempty"`
	BoxNumber     string `json:"boxNumber,omitempty"`
}

// ExtractedInvoice is the loosely-typed candidate record produced by the
// extraction provider. No field may be trusted to be present or well-formed.
type ExtractedInvoice struct {
	InvoiceNumber  string `json:"invoiceNumber,omitempty"`
	InvoiceDate    string `json:"invoiceDate,omitempty"`
	BuyerOrderNo   string `json:"buyerOrderNo,omitempty"`
	BuyerOrderDate string `json:"buyerOrderDate,omitempty"`
	InvoiceType    string `json:"invoiceType,omitempty"`

	ExporterName    string `json:"exporterName,omitempty"`
	ExporterAddress string `json:"exporterAddress,omitempty"`
	ExporterPhone   string `json:"exporterPhone,omitempty"`
	ExporterFax     string `json:"exporterFax,omitempty"`
	ExporterGSTIN   string `json:"exporterGstin,omitempty"`
	ExporterIEC     string `json:"exporterIec,omitempty"`
	ExporterBank    string `json:"exporterBank,omitempty"`
	ExporterAccount string `json:"exporterAccount,omitempty"`
	ExporterARNNo   string `json:"exporterArnNo,omitempty"`

	ConsigneeName    string `json:"consigneeName,omitempty"`
	ConsigneeAddress string `json:"consigneeAddress,omitempty"`
	ConsigneePhone   string `json:"consigneePhone,omitempty"`
	BuyerName        string `json:"buyerName,omitempty"`
	BuyerAddress     string `json:"buyerAddress,omitempty"`
	BuyerPhone       string `json:"buyerPhone,omitempty"`

	CountryOfOrigin      string `json:"countryOfOrigin,omitempty"`
	CountryOfDestination string `json:"countryOfDestination,omitempty"`
	PortOfLoading        string `json:"portOfLoading,omitempty"`
	PortOfDischarge      string `json:"portOfDischarge,omitempty"`
	TermsOfDelivery      string `json:"termsOfDelivery,omitempty"`
	ProductDescription   string `json:"productDescription,omitempty"`

	Currency     string `json:"currency,omitempty"`
	ExchangeRate string `json:"exchangeRate,omitempty"`
	TotalBoxes   string `json:"totalBoxes,omitempty"`
	ShippingCost string `json:"shippingCost,omitempty"`

	Items []ExtractedItem `json:"items,omitempty"`
}

// Constituent is one component line of a safety data sheet.
type Constituent struct {
	Percentage     string `json:"percentage"`
	Name           string `json:"name"`
	CASNo          string `json:"casNo"`
	ECNo           string `json:"ecNo"`
	Classification string `json:"classification"`
}

// ProductSafetyData is the structured record an enrichment provider returns
// for a product name. The static fallback reproduces this exact shape, so
// composers can rely on every field being populated.
type ProductSafetyData struct {
	ProductName          string        `json:"productName"`
	BiologicalDefinition string        `json:"biologicalDefinition"`
	INCIName             string        `json:"inciName"`
	CASNo                string        `json:"casNo"`
	ECNo                 string        `json:"ecNo"`
	EINECSNo             string        `json:"einecsNo"`
	Appearance           string        `json:"appearance"`
	Colour               string        `json:"colour"`
	Odour                string        `json:"odour"`
	RelativeDensity      string        `json:"relativeDensity"`
	FlashPointC          string        `json:"flashPointC"`
	RefractiveIndex      string        `json:"refractiveIndex"`
	MeltingPointC        string        `json:"meltingPointC"`
	BoilingPointC        string        `json:"boilingPointC"`
	VapourPressure       string        `json:"vapourPressure"`
	SolubilityInWater    string        `json:"solubilityInWater20C"`
	AutoIgnitionTempC    string        `json:"autoIgnitionTempC"`
	Solubility           string        `json:"solubility"`
	SpecificGravity      string        `json:"specificGravity"`
	OpticalRotation      string        `json:"opticalRotation"`
	ExtractionMethod     string        `json:"extractionMethod"`
	ActiveConstituents   string        `json:"activeConstituents"`
	Constituents         []Constituent `json:"constituents"`
}

// RestrictedComponent is one IFRA-restricted aromatic component entry.
type RestrictedComponent struct {
	ComponentName   string `json:"componentName"`
	CASNo           string `json:"casNo"`
	PercentageLevel string `json:"percentageLevel"`
	IFRAStandard    string `json:"ifraStandard"`
}

// ItemEnrichment is the per-item manufacturing metadata an enrichment
// provider generates when the invoice shows extra item fields.
type ItemEnrichment struct {
	BatchNumber   string `json:"batchNumber"`
	MfgDate       string `json:"mfgDate"`
	ExpDate       string `json:"expDate"`
	BotanicalName string `json:"botanicalName"`
}

// Artifact is one generated file awaiting upload.
type Artifact struct {
	Kind        DocumentKind `json:"kind"`
	Filename    string       `json:"filename"`
	ContentType string       `json:"contentType"`
	Bytes       []byte       `json:"-"`
}

// DocumentFailure records one document that could not be generated or
// uploaded during a render pass.
type DocumentFailure struct {
	Kind   DocumentKind `json:"kind"`
	Reason string       `json:"reason"`
}

// GenerateResult is the caller-visible outcome of one render pass: durable
// links for everything that succeeded plus the list of what failed.
type GenerateResult struct {
	InvoiceID     uuid.UUID               `json:"invoiceId"`
	InvoiceNumber string                  `json:"invoiceNumber"`
	SheetLink     string                  `json:"sheetLink"`
	PDFLink       string                  `json:"pdfLink"`
	BundleLink    string                  `json:"bundleLink,omitempty"`
	DocumentLinks map[DocumentKind]string `json:"documentLinks"`
	Failed        []DocumentFailure       `json:"failed,omitempty"`
}

// Invoice is the persisted form of a rendered invoice.
type Invoice struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	OwnerID       uuid.UUID   `db:"owner_id" json:"ownerId"`
	InvoiceNumber string      `db:"invoice_number" json:"invoiceNumber"`
	InvoiceType   InvoiceType `db:"invoice_type" json:"invoiceType"`
	Record        []byte      `db:"record" json:"-"`
	Links         []byte      `db:"links" json:"-"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`
}
