package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"expodocs/internal/domain"
	"expodocs/internal/extract"
	"expodocs/internal/port"
)

// ExtractService turns an uploaded purchase order or draft invoice into a
// normalized invoice record ready for review and rendering.
type ExtractService interface {
	ExtractFromFile(ctx context.Context, raw []byte, contentType string) (*domain.InvoiceRecord, error)
	ExtractFromText(ctx context.Context, text string) (*domain.InvoiceRecord, error)
}

type extractService struct {
	provider port.ExtractionProvider
}

// NewExtractService creates a new ExtractService implementation.
func NewExtractService(provider port.ExtractionProvider) ExtractService {
	return &extractService{provider: provider}
}

func (s *extractService) ExtractFromFile(ctx context.Context, raw []byte, contentType string) (*domain.InvoiceRecord, error) {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	var (
		text string
		err  error
	)
	switch mime {
	case "application/pdf":
		text, err = extract.PDFText(raw)
		if err != nil {
			return nil, fmt.Errorf("extractService.ExtractFromFile: reading PDF text: %w", err)
		}
	case domain.ContentTypeXLSX:
		text, err = extract.SheetText(raw)
		if err != nil {
			return nil, fmt.Errorf("extractService.ExtractFromFile: reading workbook text: %w", err)
		}
	case "text/plain", "text/csv", "":
		text = string(raw)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, mime)
	}

	return s.ExtractFromText(ctx, text)
}

func (s *extractService) ExtractFromText(ctx context.Context, text string) (*domain.InvoiceRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrExtractionFailed
	}

	ext, err := s.provider.ExtractInvoice(ctx, text)
	if err != nil {
		log.Printf("extractService.ExtractFromText: provider extraction failed: %v", err)
		return nil, err
	}

	rec, err := extract.Normalize(ext)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
