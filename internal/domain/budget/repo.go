package budget

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for budgets and their line items.
// Create and Update persist the items together with the header.
type Repository interface {
	Create(ctx context.Context, b *Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	Update(ctx context.Context, b *Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Budget, int, error)
}
