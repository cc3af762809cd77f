package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentio/dentio/internal/schedule"
)

// Activity maps to the activity table. Appointments and events share the
// table, discriminated by kind; variant-specific columns are nullable.
type Activity struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Kind            string     `db:"kind" json:"kind"`
	Date            time.Time  `db:"activity_date" json:"date"`
	StartTime       string     `db:"start_time" json:"start_time"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	PractitionerID  *uuid.UUID `db:"practitioner_id" json:"practitioner_id,omitempty"`

	// Appointment columns.
	PatientID *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	Service   *string    `db:"service" json:"service,omitempty"`
	Status    *string    `db:"status" json:"status,omitempty"`

	// Event columns.
	Title *string `db:"title" json:"title,omitempty"`
	Color *string `db:"color" json:"color,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Scheduling converts the stored row into the scheduling core's activity
// shape. The core never sees persistence concerns.
func (a *Activity) Scheduling() *schedule.Activity {
	sa := &schedule.Activity{
		ID:              a.ID,
		Kind:            schedule.Kind(a.Kind),
		Date:            a.Date,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		PractitionerID:  a.PractitionerID,
		PatientID:       a.PatientID,
	}
	if a.Service != nil {
		sa.Service = *a.Service
	}
	if a.Status != nil {
		sa.Status = schedule.Status(*a.Status)
	}
	if a.Title != nil {
		sa.Title = *a.Title
	}
	if a.Color != nil {
		sa.Color = *a.Color
	}
	return sa
}

// IsAppointment reports whether the row is the appointment variant.
func (a *Activity) IsAppointment() bool {
	return a.Kind == string(schedule.KindAppointment)
}

// Cancelled reports whether the row is a cancelled appointment. Cancelled
// appointments free their slot: they are excluded from conflict and layout
// inputs.
func (a *Activity) Cancelled() bool {
	return a.Status != nil && schedule.Status(*a.Status) == schedule.StatusCancelled
}
