package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"expodocs/internal/domain"
)

// MockEnrichmentProvider is a mock implementation of port.EnrichmentProvider.
type MockEnrichmentProvider struct {
	mock.Mock
}

func (m *MockEnrichmentProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEnrichmentProvider) SafetyData(ctx context.Context, productName string) (*domain.ProductSafetyData, error) {
	args := m.Called(ctx, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductSafetyData), args.Error(1)
}

func (m *MockEnrichmentProvider) RestrictedComponents(ctx context.Context, productName string) ([]domain.RestrictedComponent, error) {
	args := m.Called(ctx, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RestrictedComponent), args.Error(1)
}

func (m *MockEnrichmentProvider) ItemData(ctx context.Context, productName string) (*domain.ItemEnrichment, error) {
	args := m.Called(ctx, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemEnrichment), args.Error(1)
}
