package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no activity exists for the requested id.
var ErrNotFound = errors.New("activity not found")

// ActivityRepository is the persistence port for calendar activities.
// List results are ordered by date and start time ascending, so conflict
// scans report the earliest stored overlap.
type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*Activity, error)
	Update(ctx context.Context, a *Activity) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByDate returns every activity on one calendar day.
	ListByDate(ctx context.Context, date time.Time) ([]*Activity, error)
	// ListByDateRange returns activities with from <= date < to.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*Activity, error)
	ListByPractitioner(ctx context.Context, practitionerID uuid.UUID, limit, offset int) ([]*Activity, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Activity, int, error)
}
