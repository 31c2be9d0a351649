package port

import (
	"context"

	"expodocs/internal/domain"
)

// ExtractionProvider converts raw invoice text into a loosely-typed
// candidate record. The output is untrusted and must be normalized before
// use.
type ExtractionProvider interface {
	ExtractInvoice(ctx context.Context, text string) (*domain.ExtractedInvoice, error)
}
