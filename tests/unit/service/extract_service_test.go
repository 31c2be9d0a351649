package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"expodocs/internal/domain"
	"expodocs/internal/service"
	"expodocs/mocks"
)

func extractedInvoice() *domain.ExtractedInvoice {
	return &domain.ExtractedInvoice{
		InvoiceNumber: "SEI-042",
		InvoiceType:   "igst",
		ExporterName:  "Sunrise Exports",
		ConsigneeName: "Tokiwa Trading Co.",
		Currency:      "USD",
		ExchangeRate:  "83.5",
		TotalBoxes:    "2",
		Items: []domain.ExtractedItem{
			{Description: "Lemongrass Oil", Qty: "10 kg", Pcs: "2", Rate: "$25.00"},
		},
	}
}

func TestExtractService_FromText_NormalizesProviderOutput(t *testing.T) {
	provider := new(mocks.MockExtractionProvider)
	svc := service.NewExtractService(provider)

	provider.On("ExtractInvoice", mock.Anything, "INVOICE SEI-042 ...").
		Return(extractedInvoice(), nil)

	rec, err := svc.ExtractFromText(context.Background(), "INVOICE SEI-042 ...")

	assert.NoError(t, err)
	assert.Equal(t, "SEI-042", rec.InvoiceNumber)
	assert.Equal(t, domain.InvoiceTypeIGST, rec.InvoiceType)
	assert.Equal(t, 83.5, rec.ExchangeRate)
	assert.Len(t, rec.Items, 1)
	assert.Equal(t, 10.0, rec.Items[0].QtyKgs)
	assert.Equal(t, 25.0, rec.Items[0].Rate)
	// Buyer falls back to consignee when the source names none.
	assert.Equal(t, "Tokiwa Trading Co.", rec.Buyer.Name)
	provider.AssertExpectations(t)
}

func TestExtractService_FromText_BlankInput(t *testing.T) {
	provider := new(mocks.MockExtractionProvider)
	svc := service.NewExtractService(provider)

	rec, err := svc.ExtractFromText(context.Background(), "   \n\t")

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	provider.AssertNotCalled(t, "ExtractInvoice", mock.Anything, mock.Anything)
}

func TestExtractService_FromText_ProviderError(t *testing.T) {
	provider := new(mocks.MockExtractionProvider)
	svc := service.NewExtractService(provider)

	provider.On("ExtractInvoice", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	rec, err := svc.ExtractFromText(context.Background(), "some invoice text")

	assert.Nil(t, rec)
	assert.Error(t, err)
}

func TestExtractService_FromFile_PlainText(t *testing.T) {
	provider := new(mocks.MockExtractionProvider)
	svc := service.NewExtractService(provider)

	provider.On("ExtractInvoice", mock.Anything, "INVOICE SEI-042").
		Return(extractedInvoice(), nil)

	rec, err := svc.ExtractFromFile(context.Background(), []byte("INVOICE SEI-042"), "text/plain; charset=utf-8")

	assert.NoError(t, err)
	assert.Equal(t, "SEI-042", rec.InvoiceNumber)
}

func TestExtractService_FromFile_UnsupportedType(t *testing.T) {
	provider := new(mocks.MockExtractionProvider)
	svc := service.NewExtractService(provider)

	rec, err := svc.ExtractFromFile(context.Background(), []byte{0x89, 0x50, 0x4E, 0x47}, "image/png")

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	provider.AssertNotCalled(t, "ExtractInvoice", mock.Anything, mock.Anything)
}

func TestExtractService_FromFile_NoUsableItems(t *testing.T) {
	provider := new(mocks.MockExtractionProvider)
	svc := service.NewExtractService(provider)

	provider.On("ExtractInvoice", mock.Anything, mock.Anything).
		Return(&domain.ExtractedInvoice{InvoiceNumber: "SEI-042"}, nil)

	rec, err := svc.ExtractFromFile(context.Background(), []byte("garbled"), "text/plain")

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
