package port

import (
	"context"

	"expodocs/internal/domain"
)

// EnrichmentProvider generates compliance metadata for a product name.
// Implementations may fail or rate-limit; callers run them through a retry
// chain that always ends in a static default.
type EnrichmentProvider interface {
	Name() string
	SafetyData(ctx context.Context, productName string) (*domain.ProductSafetyData, error)
	RestrictedComponents(ctx context.Context, productName string) ([]domain.RestrictedComponent, error)
	ItemData(ctx context.Context, productName string) (*domain.ItemEnrichment, error)
}
