package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"expodocs/internal/compose"
	"expodocs/internal/config"
	"expodocs/internal/domain"
	"expodocs/internal/htmldoc"
	"expodocs/internal/port"
	"expodocs/internal/service"
	"expodocs/mocks"
)

type renderFixture struct {
	invoices  *mocks.MockInvoiceService
	storage   *mocks.MockObjectStorage
	templates *mocks.MockTemplateStore
	enricher  *mocks.MockEnrichmentProvider
	pdf       *mocks.MockPDFRenderer
	bundler   *mocks.MockArchiveBundler
	svc       service.RenderService
}

func newRenderFixture(bundle bool) *renderFixture {
	f := &renderFixture{
		invoices:  new(mocks.MockInvoiceService),
		storage:   new(mocks.MockObjectStorage),
		templates: new(mocks.MockTemplateStore),
		enricher:  new(mocks.MockEnrichmentProvider),
		pdf:       new(mocks.MockPDFRenderer),
		bundler:   new(mocks.MockArchiveBundler),
	}
	cfg := &config.Config{
		S3:       config.S3Config{Bucket: "test-bucket", PresignExpiry: 3600},
		Render:   config.RenderConfig{Bundle: bundle},
		Pipeline: config.PipelineConfig{Concurrency: 2, UploadWorkers: 2},
	}
	f.svc = service.NewRenderService(
		f.invoices,
		f.storage,
		f.templates,
		f.enricher,
		compose.NewComposer(f.templates, f.enricher),
		htmldoc.NewRenderer(f.pdf),
		f.bundler,
		cfg,
	)
	return f
}

func (f *renderFixture) expectHappyPath() {
	f.invoices.On("Validate", mock.AnythingOfType("*domain.InvoiceRecord")).Return(nil)
	f.invoices.On("CheckUnique", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.pdf.On("RenderPDF", mock.Anything, mock.Anything).Return([]byte("%PDF-1.7 rendered"), nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/x", ETag: "abc"}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.Anything, int64(3600)).
		Return("https://presigned.example.com/doc", nil)
	f.invoices.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Invoice{ID: uuid.New()}, nil)
}

func TestRenderService_Generate_SheetAndPDF(t *testing.T) {
	f := newRenderFixture(false)
	f.expectHappyPath()

	result, err := f.svc.Generate(context.Background(), service.GenerateInput{
		OwnerID: uuid.New(),
		Record:  validRecord(),
	})

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.InvoiceID)
	assert.Equal(t, "https://presigned.example.com/doc", result.SheetLink)
	assert.Equal(t, "https://presigned.example.com/doc", result.PDFLink)
	assert.Empty(t, result.BundleLink)
	assert.Empty(t, result.Failed)
	f.invoices.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestRenderService_Generate_BundleIncluded(t *testing.T) {
	f := newRenderFixture(true)
	f.expectHappyPath()
	f.bundler.On("Bundle", mock.AnythingOfType("[]domain.Artifact")).Return([]byte("PK zip"), nil)

	result, err := f.svc.Generate(context.Background(), service.GenerateInput{
		OwnerID: uuid.New(),
		Record:  validRecord(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://presigned.example.com/doc", result.BundleLink)
	f.bundler.AssertExpectations(t)
}

func TestRenderService_Generate_PDFFailureIsFatal(t *testing.T) {
	f := newRenderFixture(false)
	f.invoices.On("Validate", mock.Anything).Return(nil)
	f.invoices.On("CheckUnique", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.pdf.On("RenderPDF", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	result, err := f.svc.Generate(context.Background(), service.GenerateInput{
		OwnerID: uuid.New(),
		Record:  validRecord(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	f.invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRenderService_Generate_CertificateFailureIsCollected(t *testing.T) {
	f := newRenderFixture(false)
	f.expectHappyPath()
	// The composer fetches its docx template through the template store;
	// a missing template fails only that one document.
	f.enricher.On("SafetyData", mock.Anything, "Lemongrass Oil").
		Return(&domain.ProductSafetyData{ProductName: "LEMONGRASS OIL"}, nil)
	f.templates.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrTemplateNotFound)

	result, err := f.svc.Generate(context.Background(), service.GenerateInput{
		OwnerID:  uuid.New(),
		Record:   validRecord(),
		Settings: domain.DocumentSettings{COA: true},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.SheetLink)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, domain.DocCOA, result.Failed[0].Kind)
	assert.Empty(t, result.DocumentLinks[domain.DocCOA])
}

func TestRenderService_Generate_DuplicateNumberRejected(t *testing.T) {
	f := newRenderFixture(false)
	f.invoices.On("Validate", mock.Anything).Return(nil)
	f.invoices.On("CheckUnique", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrDuplicateInvoiceNumber)

	result, err := f.svc.Generate(context.Background(), service.GenerateInput{
		OwnerID: uuid.New(),
		Record:  validRecord(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
	f.pdf.AssertNotCalled(t, "RenderPDF", mock.Anything, mock.Anything)
}

func TestRenderService_Generate_UploadFailureIsFatalForRequiredDocs(t *testing.T) {
	f := newRenderFixture(false)
	f.invoices.On("Validate", mock.Anything).Return(nil)
	f.invoices.On("CheckUnique", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.pdf.On("RenderPDF", mock.Anything, mock.Anything).Return([]byte("%PDF-1.7"), nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, assert.AnError)

	result, err := f.svc.Generate(context.Background(), service.GenerateInput{
		OwnerID: uuid.New(),
		Record:  validRecord(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
}

func TestRenderService_Generate_FilenamesUseInvoiceAndConsignee(t *testing.T) {
	f := newRenderFixture(false)
	f.expectHappyPath()

	var keys []string
	f.storage.ExpectedCalls = nil
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) {
			input := args.Get(1).(port.UploadInput)
			keys = append(keys, input.Key)
		}).
		Return(&port.UploadOutput{Location: "https://s3/x", ETag: "abc"}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "test-bucket", mock.Anything, int64(3600)).
		Return("https://presigned.example.com/doc", nil)

	ownerID := uuid.New()
	_, err := f.svc.Generate(context.Background(), service.GenerateInput{
		OwnerID: ownerID,
		Record:  validRecord(),
	})

	assert.NoError(t, err)
	assert.Len(t, keys, 2)
	for _, key := range keys {
		assert.True(t, strings.HasPrefix(key, "owners/"+ownerID.String()+"/invoices/"), key)
		assert.Contains(t, key, "_INV_sei-042_tokiwa")
	}
}

func TestRenderService_Generate_FillsItemMetadataWhenExtraFieldsShown(t *testing.T) {
	f := newRenderFixture(false)
	f.expectHappyPath()
	f.enricher.On("ItemData", mock.Anything, mock.Anything).
		Return(&domain.ItemEnrichment{
			BatchNumber:   "0001-06-00042",
			MfgDate:       "06/2026",
			ExpDate:       "06/2028",
			BotanicalName: "Cymbopogon flexuosus",
		}, nil)

	rec := validRecord()
	rec.ShowExtraFields = true

	_, err := f.svc.Generate(context.Background(), service.GenerateInput{
		OwnerID: uuid.New(),
		Record:  rec,
	})

	assert.NoError(t, err)
	assert.Equal(t, "0001-06-00042", rec.Items[0].BatchNumber)
	assert.Equal(t, "Cymbopogon flexuosus", rec.Items[1].BotanicalName)
	f.enricher.AssertNumberOfCalls(t, "ItemData", 2)
}
