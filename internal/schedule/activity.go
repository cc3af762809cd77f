package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two activity variants.
type Kind string

const (
	// KindAppointment is a patient-bound visit with a workflow status.
	KindAppointment Kind = "appointment"
	// KindEvent is a non-patient blocking item (a course, an all-day block).
	KindEvent Kind = "event"
)

// ErrNonPositiveDuration is returned for activities whose duration is zero or
// negative. Such an interval would starve the column-closing logic of the
// layout engine, so it is rejected before any placement happens.
var ErrNonPositiveDuration = errors.New("activity duration must be positive")

// Activity is a time-boxed calendar item: either an appointment or an event.
// Kind selects which of the variant-specific fields are meaningful. A nil
// PractitionerID means the activity is unbound: it never participates in
// conflict checks and is only subject to the global visibility toggle.
type Activity struct {
	ID              uuid.UUID  `json:"id"`
	Kind            Kind       `json:"kind"`
	Date            time.Time  `json:"date"`
	StartTime       string     `json:"start_time"`
	DurationMinutes int        `json:"duration_minutes"`
	PractitionerID  *uuid.UUID `json:"practitioner_id,omitempty"`

	// Appointment fields.
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
	Service   string     `json:"service,omitempty"`
	Status    Status     `json:"status,omitempty"`

	// Event fields.
	Title string `json:"title,omitempty"`
	Color string `json:"color,omitempty"`
}

// NewAppointment builds an appointment activity in the initial pending state.
func NewAppointment(date time.Time, start string, duration int, practitionerID *uuid.UUID, patientID uuid.UUID, service string) *Activity {
	pid := patientID
	return &Activity{
		ID:              uuid.New(),
		Kind:            KindAppointment,
		Date:            date,
		StartTime:       start,
		DurationMinutes: duration,
		PractitionerID:  practitionerID,
		PatientID:       &pid,
		Service:         service,
		Status:          StatusPending,
	}
}

// NewEvent builds an event activity. Events carry no patient and no status.
func NewEvent(date time.Time, start string, duration int, practitionerID *uuid.UUID, title, color string) *Activity {
	return &Activity{
		ID:              uuid.New(),
		Kind:            KindEvent,
		Date:            date,
		StartTime:       start,
		DurationMinutes: duration,
		PractitionerID:  practitionerID,
		Title:           title,
		Color:           color,
	}
}

// StartMinutes returns the start offset in minutes from midnight.
func (a *Activity) StartMinutes() (int, error) {
	return ToMinutes(a.StartTime)
}

// EndMinutes returns the end offset in minutes from midnight.
func (a *Activity) EndMinutes() (int, error) {
	start, err := ToMinutes(a.StartTime)
	if err != nil {
		return 0, err
	}
	return start + a.DurationMinutes, nil
}

// EndTime returns the wall-clock end time. Fails when the activity would run
// past midnight.
func (a *Activity) EndTime() (string, error) {
	return AddMinutes(a.StartTime, a.DurationMinutes)
}

// StartsAt combines the activity's date and start time into a single instant
// in the date's location.
func (a *Activity) StartsAt() (time.Time, error) {
	start, err := ToMinutes(a.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		start/60, start%60, 0, 0, a.Date.Location()), nil
}

// On reports whether the activity falls on the given calendar day.
func (a *Activity) On(date time.Time) bool {
	return sameDay(a.Date, date)
}

// Validate checks the activity's shape: a parseable start time, a positive
// duration that stays within the day, and variant fields matching the kind.
func (a *Activity) Validate() error {
	start, err := ToMinutes(a.StartTime)
	if err != nil {
		return err
	}
	if a.DurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveDuration, a.DurationMinutes)
	}
	if start+a.DurationMinutes > MinutesPerDay {
		return fmt.Errorf("%w: %s + %d minutes", ErrPastMidnight, a.StartTime, a.DurationMinutes)
	}
	switch a.Kind {
	case KindAppointment:
		if a.PatientID == nil {
			return fmt.Errorf("appointment requires a patient")
		}
		if a.Status != "" && !a.Status.Valid() {
			return fmt.Errorf("invalid appointment status: %s", a.Status)
		}
	case KindEvent:
		if a.Status != "" {
			return fmt.Errorf("events have no status")
		}
	default:
		return fmt.Errorf("unknown activity kind: %q", a.Kind)
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
