package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"expodocs/internal/domain"
)

// MockExtractionProvider is a mock implementation of port.ExtractionProvider.
type MockExtractionProvider struct {
	mock.Mock
}

func (m *MockExtractionProvider) ExtractInvoice(ctx context.Context, text string) (*domain.ExtractedInvoice, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedInvoice), args.Error(1)
}
