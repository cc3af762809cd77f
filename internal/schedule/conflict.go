package schedule

import (
	"time"

	"github.com/google/uuid"
)

// ConflictKind discriminates why a candidate activity was rejected.
type ConflictKind string

const (
	// ConflictPastDate means the candidate starts before the current moment.
	ConflictPastDate ConflictKind = "past_date"
	// ConflictDoubleBooking means the candidate overlaps another activity
	// bound to the same practitioner on the same date.
	ConflictDoubleBooking ConflictKind = "double_booking"
)

// Conflict describes a rejected candidate. It is a normal business outcome,
// returned as data rather than as an error, so the caller can surface it as
// an actionable message.
type Conflict struct {
	Kind ConflictKind `json:"kind"`

	// Set for double bookings: the activity already occupying the slot.
	ActivityID   uuid.UUID `json:"conflicting_activity_id,omitempty"`
	StartTime    string    `json:"conflicting_start_time,omitempty"`
	ActivityKind Kind      `json:"conflicting_kind,omitempty"`
}

// Checker validates candidate activities against a snapshot of existing
// ones. Now is injectable for tests; when nil, time.Now is used.
type Checker struct {
	Now func() time.Time
}

func (ck *Checker) now() time.Time {
	if ck.Now != nil {
		return ck.Now()
	}
	return time.Now()
}

// Check returns nil when the candidate is schedulable, or the first conflict
// found. allowPast skips the past-date rule; it is false for new activities
// and true for edits of existing ones.
//
// The scan preserves the snapshot's order and reports the first overlap
// encountered, not necessarily the earliest-starting one. Repositories hand
// over activities ordered by start time, so in practice the reported
// conflict is the earliest stored overlap.
//
// An activity whose ID equals the candidate's is skipped, so a candidate
// being edited in place never conflicts with its own stored version.
// Unbound activities (no practitioner) neither conflict nor block.
func (ck *Checker) Check(candidate *Activity, existing []*Activity, allowPast bool) (*Conflict, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	if !allowPast {
		startAt, err := candidate.StartsAt()
		if err != nil {
			return nil, err
		}
		if startAt.Before(ck.now()) {
			return &Conflict{Kind: ConflictPastDate}, nil
		}
	}

	if candidate.PractitionerID == nil {
		return nil, nil
	}

	cStart, err := candidate.StartMinutes()
	if err != nil {
		return nil, err
	}
	cEnd := cStart + candidate.DurationMinutes

	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if other.PractitionerID == nil || *other.PractitionerID != *candidate.PractitionerID {
			continue
		}
		if !sameDay(other.Date, candidate.Date) {
			continue
		}
		oStart, err := other.StartMinutes()
		if err != nil {
			return nil, err
		}
		oEnd := oStart + other.DurationMinutes

		// Half-open intervals: back-to-back activities do not conflict.
		if cStart < oEnd && cEnd > oStart {
			return &Conflict{
				Kind:         ConflictDoubleBooking,
				ActivityID:   other.ID,
				StartTime:    other.StartTime,
				ActivityKind: other.Kind,
			}, nil
		}
	}

	return nil, nil
}
