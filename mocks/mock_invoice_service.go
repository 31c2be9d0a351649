package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"expodocs/internal/domain"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Validate(rec *domain.InvoiceRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockInvoiceService) CheckUnique(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) error {
	args := m.Called(ctx, ownerID, invoiceNumber)
	return args.Error(0)
}

func (m *MockInvoiceService) Save(ctx context.Context, ownerID uuid.UUID, rec *domain.InvoiceRecord, links *domain.GenerateResult) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, rec, links)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}
