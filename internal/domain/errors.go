package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInvoice         = errors.New("invoice record failed validation")
	ErrNoLineItems            = errors.New("invoice has no line items")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already used")
	ErrInvalidInvoiceType     = errors.New("invoice type must be IGST or LUT")
	ErrInvalidExchangeRate    = errors.New("exchange rate must be positive")
	ErrTemplateNotFound       = errors.New("document template not found")
	ErrWorksheetNotFound      = errors.New("worksheet not found in template")
	ErrExtractionFailed       = errors.New("no usable invoice data extracted")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrRenderFailed           = errors.New("no required invoice artifact could be generated")
)
