package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for patients.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	// Search matches name, surname or fiscal code, case insensitive.
	Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error)
}
