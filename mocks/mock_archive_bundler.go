package mocks

import (
	"github.com/stretchr/testify/mock"

	"expodocs/internal/domain"
)

// MockArchiveBundler is a mock implementation of port.ArchiveBundler.
type MockArchiveBundler struct {
	mock.Mock
}

func (m *MockArchiveBundler) Bundle(artifacts []domain.Artifact) ([]byte, error) {
	args := m.Called(artifacts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
