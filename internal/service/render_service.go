package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"expodocs/internal/boxes"
	"expodocs/internal/compose"
	"expodocs/internal/config"
	"expodocs/internal/domain"
	"expodocs/internal/grid"
	"expodocs/internal/htmldoc"
	"expodocs/internal/port"
)

// GenerateInput is the DTO for document generation requests.
type GenerateInput struct {
	OwnerID  uuid.UUID
	Record   *domain.InvoiceRecord
	Settings domain.DocumentSettings
}

// RenderService runs the full document pipeline for one invoice: every
// requested document is generated and uploaded, failures are collected per
// document, and the invoice is persisted with links to what succeeded.
type RenderService interface {
	Generate(ctx context.Context, input GenerateInput) (*domain.GenerateResult, error)
}

type renderService struct {
	invoices  InvoiceService
	storage   port.ObjectStorage
	templates port.TemplateStore
	enricher  port.EnrichmentProvider
	composer  *compose.Composer
	html      *htmldoc.Renderer
	bundler   port.ArchiveBundler
	s3cfg     *config.S3Config
	render    *config.RenderConfig
	pipeline  *config.PipelineConfig
}

// NewRenderService creates a new RenderService implementation.
func NewRenderService(
	invoices InvoiceService,
	storage port.ObjectStorage,
	templates port.TemplateStore,
	enricher port.EnrichmentProvider,
	composer *compose.Composer,
	html *htmldoc.Renderer,
	bundler port.ArchiveBundler,
	cfg *config.Config,
) RenderService {
	return &renderService{
		invoices:  invoices,
		storage:   storage,
		templates: templates,
		enricher:  enricher,
		composer:  composer,
		html:      html,
		bundler:   bundler,
		s3cfg:     &cfg.S3,
		render:    &cfg.Render,
		pipeline:  &cfg.Pipeline,
	}
}

// job is one document generation task in the fan-out.
type job struct {
	kind domain.DocumentKind
	ext  string
	mime string
	run  func(ctx context.Context) ([]byte, error)
}

func (s *renderService) Generate(ctx context.Context, input GenerateInput) (*domain.GenerateResult, error) {
	rec := input.Record
	if err := s.invoices.Validate(rec); err != nil {
		return nil, err
	}
	if err := s.invoices.CheckUnique(ctx, input.OwnerID, rec.InvoiceNumber); err != nil {
		return nil, err
	}

	boxes.Resolve(rec.Items, rec.TotalBoxes)
	if rec.ShowExtraFields {
		s.fillItemMetadata(ctx, rec)
	}

	artifacts, failures := s.generateAll(ctx, rec, input.Settings)

	result := &domain.GenerateResult{
		InvoiceID:     uuid.New(),
		InvoiceNumber: rec.InvoiceNumber,
		DocumentLinks: make(map[domain.DocumentKind]string),
		Failed:        failures,
	}

	// The spreadsheet and PDF are the invoice itself; without both the
	// render pass has not produced an invoice.
	byKind := make(map[domain.DocumentKind]bool, len(artifacts))
	for _, a := range artifacts {
		byKind[a.Kind] = true
	}
	if !byKind[domain.DocInvoiceSheet] || !byKind[domain.DocInvoicePDF] {
		return nil, fmt.Errorf("%w: %s", domain.ErrRenderFailed, failureSummary(failures))
	}

	if s.render.Bundle {
		bundle, err := s.bundler.Bundle(artifacts)
		if err != nil {
			log.Printf("renderService.Generate: bundling failed for invoice %s: %v", rec.InvoiceNumber, err)
			result.Failed = append(result.Failed, domain.DocumentFailure{Kind: domain.DocBundle, Reason: err.Error()})
		} else {
			artifacts = append(artifacts, domain.Artifact{
				Kind:        domain.DocBundle,
				Filename:    fmt.Sprintf("INV_%s_%s.zip", slug(rec.InvoiceNumber), consigneeSlug(rec)),
				ContentType: domain.ContentTypeZip,
				Bytes:       bundle,
			})
		}
	}

	links, uploadFailures := s.uploadAll(ctx, input.OwnerID, result.InvoiceID, artifacts)
	result.Failed = append(result.Failed, uploadFailures...)

	result.SheetLink = links[domain.DocInvoiceSheet]
	result.PDFLink = links[domain.DocInvoicePDF]
	result.BundleLink = links[domain.DocBundle]
	for kind, link := range links {
		switch kind {
		case domain.DocInvoiceSheet, domain.DocInvoicePDF, domain.DocBundle:
		default:
			result.DocumentLinks[kind] = link
		}
	}
	if result.SheetLink == "" || result.PDFLink == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrRenderFailed, failureSummary(result.Failed))
	}

	if _, err := s.invoices.Save(ctx, input.OwnerID, rec, result); err != nil {
		return nil, err
	}
	return result, nil
}

// generateAll fans document generation out across a bounded worker pool.
// A failed document is recorded and skipped; it never aborts its siblings.
func (s *renderService) generateAll(ctx context.Context, rec *domain.InvoiceRecord, settings domain.DocumentSettings) ([]domain.Artifact, []domain.DocumentFailure) {
	jobs := s.buildJobs(rec, settings)

	concurrency := s.pipeline.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		artifacts []domain.Artifact
		failures  []domain.DocumentFailure
	)

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			raw, err := j.run(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("renderService: generating %s for invoice %s failed: %v", j.kind, rec.InvoiceNumber, err)
				failures = append(failures, domain.DocumentFailure{Kind: j.kind, Reason: err.Error()})
				return
			}
			artifacts = append(artifacts, domain.Artifact{
				Kind:        j.kind,
				Filename:    s.filename(rec, j.kind, j.ext),
				ContentType: j.mime,
				Bytes:       raw,
			})
		}(j)
	}
	wg.Wait()

	return artifacts, failures
}

func (s *renderService) buildJobs(rec *domain.InvoiceRecord, settings domain.DocumentSettings) []job {
	jobs := []job{
		{domain.DocInvoiceSheet, ".xlsx", domain.ContentTypeXLSX, func(context.Context) ([]byte, error) {
			return sheetBytes(invoiceSheet(rec))
		}},
		{domain.DocInvoicePDF, ".pdf", domain.ContentTypePDF, func(ctx context.Context) ([]byte, error) {
			return s.html.InvoicePDF(ctx, rec)
		}},
	}

	if settings.PackingList {
		jobs = append(jobs, job{domain.DocPackingList, ".xlsx", domain.ContentTypeXLSX, func(context.Context) ([]byte, error) {
			return sheetBytes(grid.BuildPackingList(rec))
		}})
	}
	if settings.SLIFedEx {
		jobs = append(jobs, job{domain.DocSLIFedEx, ".xlsx", domain.ContentTypeXLSX, func(ctx context.Context) ([]byte, error) {
			return grid.RenderSLIFedEx(ctx, s.templates, rec)
		}})
	}
	if settings.SLIDHL {
		jobs = append(jobs, job{domain.DocSLIDHL, ".xlsx", domain.ContentTypeXLSX, func(ctx context.Context) ([]byte, error) {
			return grid.RenderSLIDHL(ctx, s.templates, rec)
		}})
	}

	for kind, wanted := range map[domain.DocumentKind]bool{
		domain.DocAnnexure:       settings.Annexure,
		domain.DocCOA:            settings.COA,
		domain.DocMSDS:           settings.MSDS,
		domain.DocMSDSTwoColumn:  settings.MSDSTwoColumn,
		domain.DocSDS:            settings.SDS,
		domain.DocIFRA:           settings.IFRA,
		domain.DocNonHazardous:   settings.NonHazardous,
		domain.DocNonHazardousV2: settings.NonHazardousV2,
		domain.DocToxicControl:   settings.ToxicControl,
	} {
		if !wanted {
			continue
		}
		k := kind
		jobs = append(jobs, job{k, ".docx", domain.ContentTypeDOCX, func(ctx context.Context) ([]byte, error) {
			return s.composer.Compose(ctx, k, rec)
		}})
	}
	return jobs
}

// uploadAll pushes artifacts to object storage in parallel and returns a
// durable link per kind. Upload failures are reported, not fatal; the
// required-document check happens on the caller's side.
func (s *renderService) uploadAll(ctx context.Context, ownerID, invoiceID uuid.UUID, artifacts []domain.Artifact) (map[domain.DocumentKind]string, []domain.DocumentFailure) {
	workers := s.pipeline.UploadWorkers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		links    = make(map[domain.DocumentKind]string, len(artifacts))
		failures []domain.DocumentFailure
	)

	for _, a := range artifacts {
		wg.Add(1)
		go func(a domain.Artifact) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			key := fmt.Sprintf("owners/%s/invoices/%s/%s", ownerID, invoiceID, a.Filename)
			_, err := s.storage.Upload(ctx, port.UploadInput{
				Bucket:      s.s3cfg.Bucket,
				Key:         key,
				Body:        bytes.NewReader(a.Bytes),
				ContentType: a.ContentType,
				Size:        int64(len(a.Bytes)),
			})
			if err == nil {
				var url string
				url, err = s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, key, s.s3cfg.PresignExpiry)
				if err == nil {
					mu.Lock()
					links[a.Kind] = url
					mu.Unlock()
					return
				}
			}

			log.Printf("renderService: uploading %s failed: %v", a.Filename, err)
			mu.Lock()
			failures = append(failures, domain.DocumentFailure{Kind: a.Kind, Reason: fmt.Sprintf("%v: %v", domain.ErrUploadFailed, err)})
			mu.Unlock()
		}(a)
	}
	wg.Wait()

	return links, failures
}

// fillItemMetadata backfills missing manufacturing metadata through the
// enrichment chain. The chain never fails outright, but a provider error on
// one item must not block the render, so errors are only logged.
func (s *renderService) fillItemMetadata(ctx context.Context, rec *domain.InvoiceRecord) {
	for i := range rec.Items {
		it := &rec.Items[i]
		if it.BatchNumber != "" && it.MfgDate != "" && it.ExpDate != "" && it.BotanicalName != "" {
			continue
		}
		data, err := s.enricher.ItemData(ctx, it.Description)
		if err != nil {
			log.Printf("renderService: item enrichment for %q failed: %v", it.Description, err)
			continue
		}
		if it.BatchNumber == "" {
			it.BatchNumber = data.BatchNumber
		}
		if it.MfgDate == "" {
			it.MfgDate = data.MfgDate
		}
		if it.ExpDate == "" {
			it.ExpDate = data.ExpDate
		}
		if it.BotanicalName == "" {
			it.BotanicalName = data.BotanicalName
		}
	}
}

func invoiceSheet(rec *domain.InvoiceRecord) (*excelize.File, error) {
	if rec.InvoiceType == domain.InvoiceTypeLUT {
		return grid.BuildLUTInvoice(rec)
	}
	return grid.BuildIGSTInvoice(rec)
}

func sheetBytes(f *excelize.File, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// filename builds the customer-visible document name, e.g.
// "COA_INV_sei-042_tokiwa.docx".
func (s *renderService) filename(rec *domain.InvoiceRecord, kind domain.DocumentKind, ext string) string {
	return fmt.Sprintf("%s_INV_%s_%s%s", docLabel(rec, kind), slug(rec.InvoiceNumber), consigneeSlug(rec), ext)
}

func docLabel(rec *domain.InvoiceRecord, kind domain.DocumentKind) string {
	switch kind {
	case domain.DocInvoiceSheet, domain.DocInvoicePDF:
		return string(rec.InvoiceType)
	case domain.DocPackingList:
		return "PACKING_LIST"
	case domain.DocSLIFedEx:
		return "SLI_FEDEX"
	case domain.DocSLIDHL:
		return "SLI_DHL"
	case domain.DocAnnexure:
		return "ANNEXURE"
	case domain.DocCOA:
		return "COA"
	case domain.DocMSDS:
		return "MSDS"
	case domain.DocMSDSTwoColumn:
		return "MSDS_USA"
	case domain.DocSDS:
		return "SDS"
	case domain.DocIFRA:
		return "IFRA"
	case domain.DocNonHazardous:
		return "NON_HAZARDOUS"
	case domain.DocNonHazardousV2:
		return "NON_HAZARDOUS_V2"
	case domain.DocToxicControl:
		return "TOXIC_CONTROL"
	default:
		return strings.ToUpper(string(kind))
	}
}

// slug lowercases s and collapses every non-alphanumeric run into a dash.
func slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// consigneeSlug is the first word of the consignee name, slugged.
func consigneeSlug(rec *domain.InvoiceRecord) string {
	fields := strings.Fields(rec.Consignee.Name)
	if len(fields) == 0 {
		return "consignee"
	}
	return slug(fields[0])
}

func failureSummary(failures []domain.DocumentFailure) string {
	if len(failures) == 0 {
		return "no documents generated"
	}
	parts := make([]string, len(failures))
	for i, f := range failures {
		parts[i] = fmt.Sprintf("%s: %s", f.Kind, f.Reason)
	}
	return strings.Join(parts, "; ")
}
