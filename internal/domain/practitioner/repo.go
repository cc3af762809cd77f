package practitioner

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for practitioners.
type Repository interface {
	Create(ctx context.Context, p *Practitioner) error
	GetByID(ctx context.Context, id uuid.UUID) (*Practitioner, error)
	Update(ctx context.Context, p *Practitioner) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Practitioner, int, error)
}
