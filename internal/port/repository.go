package port

import (
	"context"

	"github.com/google/uuid"

	"expodocs/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence.
// All query methods include ownerID to scope data to its owner.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.Invoice, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ExistsByNumber(ctx context.Context, ownerID uuid.UUID, invoiceNumber string) (bool, error)
}
