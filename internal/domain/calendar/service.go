package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentio/dentio/internal/schedule"
)

// ErrInvalid wraps failures caused by the request payload rather than by
// storage. Handlers translate it into a 400 response.
var ErrInvalid = errors.New("invalid activity")

// Service orchestrates activity persistence with the scheduling core: every
// create and update is validated through the conflict detector before it is
// persisted, and the day/week/month views are computed from a fresh
// date-scoped snapshot on every call.
type Service struct {
	activities ActivityRepository
	checker    *schedule.Checker
}

func NewService(activities ActivityRepository) *Service {
	return &Service{activities: activities, checker: &schedule.Checker{}}
}

// NewServiceWithClock builds a service whose past-date rule evaluates
// against the given clock. Used by tests.
func NewServiceWithClock(activities ActivityRepository, now func() time.Time) *Service {
	return &Service{activities: activities, checker: &schedule.Checker{Now: now}}
}

// CreateActivity validates the candidate and persists it when no conflict is
// found. A non-nil conflict is a normal business outcome: the activity was
// not persisted and the descriptor explains why.
func (s *Service) CreateActivity(ctx context.Context, a *Activity) (*schedule.Conflict, error) {
	sa := a.Scheduling()
	if sa.Kind == schedule.KindAppointment && sa.Status == "" {
		pending := string(schedule.StatusPending)
		a.Status = &pending
		sa.Status = schedule.StatusPending
	}
	if err := sa.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	snapshot, err := s.schedulingSnapshot(ctx, a.Date)
	if err != nil {
		return nil, err
	}
	conflict, err := s.checker.Check(sa, snapshot, false)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return conflict, nil
	}
	return nil, s.activities.Create(ctx, a)
}

// UpdateActivity re-validates an edited activity. The past-date rule is
// skipped (edits of existing activities may keep a start in the past) and
// the stored version excludes itself from the overlap scan by id.
func (s *Service) UpdateActivity(ctx context.Context, a *Activity) (*schedule.Conflict, error) {
	if a.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: activity id is required", ErrInvalid)
	}
	sa := a.Scheduling()
	if err := sa.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	snapshot, err := s.schedulingSnapshot(ctx, a.Date)
	if err != nil {
		return nil, err
	}
	conflict, err := s.checker.Check(sa, snapshot, true)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return conflict, nil
	}
	return nil, s.activities.Update(ctx, a)
}

func (s *Service) GetActivity(ctx context.Context, id uuid.UUID) (*Activity, error) {
	return s.activities.GetByID(ctx, id)
}

// DeleteActivity removes an activity. Deletion is the only way an activity
// leaves the conflict and layout computation sets.
func (s *Service) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	return s.activities.Delete(ctx, id)
}

func (s *Service) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID, limit, offset int) ([]*Activity, int, error) {
	return s.activities.ListByPractitioner(ctx, practitionerID, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Activity, int, error) {
	return s.activities.ListByPatient(ctx, patientID, limit, offset)
}

// ChangeStatus applies the appointment workflow state machine. Status
// changes never re-run conflict detection.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, next schedule.Status) (*Activity, error) {
	a, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsAppointment() {
		return nil, fmt.Errorf("%w: events have no status", ErrInvalid)
	}
	current := schedule.StatusPending
	if a.Status != nil {
		current = schedule.Status(*a.Status)
	}
	if err := schedule.Transition(current, next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	status := string(next)
	a.Status = &status
	if err := s.activities.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DayView computes the lane layout for one calendar day.
func (s *Service) DayView(ctx context.Context, date time.Time, f schedule.Filter) (*schedule.DayView, error) {
	snapshot, err := s.schedulingSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return schedule.BuildDay(date, snapshot, f)
}

// WeekView computes seven day layouts starting at weekStart.
func (s *Service) WeekView(ctx context.Context, weekStart time.Time, f schedule.Filter) ([]*schedule.DayView, error) {
	rows, err := s.activities.ListByDateRange(ctx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	return schedule.BuildWeek(weekStart, activeScheduling(rows), f)
}

// MonthView summarizes a month, one cell per day.
func (s *Service) MonthView(ctx context.Context, year int, month time.Month, f schedule.Filter) ([]schedule.MonthCell, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	rows, err := s.activities.ListByDateRange(ctx, first, first.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	return schedule.BuildMonth(year, month, activeScheduling(rows), f)
}

// schedulingSnapshot fetches one day's activities and converts them for the
// core, dropping cancelled appointments so they free their slot.
func (s *Service) schedulingSnapshot(ctx context.Context, date time.Time) ([]*schedule.Activity, error) {
	rows, err := s.activities.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return activeScheduling(rows), nil
}

func activeScheduling(rows []*Activity) []*schedule.Activity {
	out := make([]*schedule.Activity, 0, len(rows))
	for _, a := range rows {
		if a.Cancelled() {
			continue
		}
		out = append(out, a.Scheduling())
	}
	return out
}
