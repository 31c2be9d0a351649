package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"expodocs/internal/domain"
	"expodocs/internal/service"
)

// MockRenderService is a mock implementation of service.RenderService.
type MockRenderService struct {
	mock.Mock
}

func (m *MockRenderService) Generate(ctx context.Context, input service.GenerateInput) (*domain.GenerateResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerateResult), args.Error(1)
}
