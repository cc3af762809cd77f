package schedule

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestActivityValidate(t *testing.T) {
	doc := uuid.New()
	a := appt(day(2026, 2, 14), "09:00", 30, &doc)
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestActivityValidate_AppointmentRequiresPatient(t *testing.T) {
	a := appt(day(2026, 2, 14), "09:00", 30, nil)
	a.PatientID = nil
	if err := a.Validate(); err == nil {
		t.Error("expected error for appointment without patient")
	}
}

func TestActivityValidate_EventsHaveNoStatus(t *testing.T) {
	e := NewEvent(day(2026, 2, 14), "09:00", 30, nil, "meeting", "#112233")
	if err := e.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.Status = StatusPending
	if err := e.Validate(); err == nil {
		t.Error("expected error for event with status")
	}
}

func TestActivityValidate_RejectsMidnightSpan(t *testing.T) {
	e := NewEvent(day(2026, 2, 14), "23:00", 120, nil, "late block", "#112233")
	if err := e.Validate(); !errors.Is(err, ErrPastMidnight) {
		t.Errorf("expected ErrPastMidnight, got %v", err)
	}
}

func TestActivityValidate_UnknownKind(t *testing.T) {
	a := appt(day(2026, 2, 14), "09:00", 30, nil)
	a.Kind = Kind("reminder")
	if err := a.Validate(); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestActivityEndTime(t *testing.T) {
	a := appt(day(2026, 2, 14), "09:45", 30, nil)
	end, err := a.EndTime()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != "10:15" {
		t.Errorf("end time = %q, want 10:15", end)
	}
}

func TestActivityStartsAt(t *testing.T) {
	a := appt(day(2026, 2, 14), "09:45", 30, nil)
	at, err := a.StartsAt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at.Hour() != 9 || at.Minute() != 45 || at.Day() != 14 {
		t.Errorf("StartsAt = %v", at)
	}
}
