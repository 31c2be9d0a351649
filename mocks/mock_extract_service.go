package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"expodocs/internal/domain"
)

// MockExtractService is a mock implementation of service.ExtractService.
type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) ExtractFromFile(ctx context.Context, raw []byte, contentType string) (*domain.InvoiceRecord, error) {
	args := m.Called(ctx, raw, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceRecord), args.Error(1)
}

func (m *MockExtractService) ExtractFromText(ctx context.Context, text string) (*domain.InvoiceRecord, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceRecord), args.Error(1)
}
