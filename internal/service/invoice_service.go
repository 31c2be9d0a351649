package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"expodocs/internal/domain"
	"expodocs/internal/port"
)

// InvoiceService manages persisted invoices and record validation.
type InvoiceService interface {
	Validate(rec *domain.InvoiceRecord) error
	CheckUnique(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) error
	Save(ctx context.Context, ownerID uuid.UUID, rec *domain.InvoiceRecord, links *domain.GenerateResult) (*domain.Invoice, error)
	GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
}

type invoiceService struct {
	repo port.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(repo port.InvoiceRepository) InvoiceService {
	return &invoiceService{repo: repo}
}

// Validate checks the structural invariants every renderer depends on.
func (s *invoiceService) Validate(rec *domain.InvoiceRecord) error {
	if strings.TrimSpace(rec.InvoiceNumber) == "" {
		return fmt.Errorf("%w: invoice number is required", domain.ErrInvalidInvoice)
	}
	if !rec.InvoiceType.Valid() {
		return domain.ErrInvalidInvoiceType
	}
	if len(rec.Items) == 0 {
		return domain.ErrNoLineItems
	}
	if rec.ExchangeRate <= 0 {
		return domain.ErrInvalidExchangeRate
	}
	return nil
}

func (s *invoiceService) CheckUnique(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) error {
	exists, err := s.repo.ExistsByNumber(ctx, ownerID, invoiceNumber)
	if err != nil {
		return fmt.Errorf("checking invoice number: %w", err)
	}
	if exists {
		return domain.ErrDuplicateInvoiceNumber
	}
	return nil
}

func (s *invoiceService) Save(ctx context.Context, ownerID uuid.UUID, rec *domain.InvoiceRecord, links *domain.GenerateResult) (*domain.Invoice, error) {
	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling invoice record: %w", err)
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("marshaling invoice links: %w", err)
	}

	inv := &domain.Invoice{
		ID:            links.InvoiceID,
		OwnerID:       ownerID,
		InvoiceNumber: rec.InvoiceNumber,
		InvoiceType:   rec.InvoiceType,
		Record:        recordJSON,
		Links:         linksJSON,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, ownerID, invoiceID)
}

func (s *invoiceService) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, offset, limit)
}
