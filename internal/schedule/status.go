package schedule

import (
	"errors"
	"fmt"
)

// Status is the workflow state of an appointment. Events have no status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusAttended  Status = "attended"
	StatusCancelled Status = "cancelled"
)

// ErrInvalidTransition is returned for a status change the workflow does not
// allow. Terminal states (attended, cancelled) have no outgoing transitions.
var ErrInvalidTransition = errors.New("invalid status transition")

var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusAttended, StatusCancelled},
	StatusAttended:  {},
	StatusCancelled: {},
}

// Valid reports whether s is a known appointment status.
func (s Status) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal reports whether s has no outgoing transitions.
func (s Status) Terminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates a status change. Status changes are one-way user
// actions; they do not re-run conflict detection.
func Transition(from, to Status) error {
	if !from.Valid() {
		return fmt.Errorf("invalid appointment status: %s", from)
	}
	if !to.Valid() {
		return fmt.Errorf("invalid appointment status: %s", to)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
