package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of wall-clock minutes in one calendar day.
const MinutesPerDay = 24 * 60

// ErrInvalidTimeFormat is returned when a wall-clock string is not "HH:MM".
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ErrPastMidnight is returned by AddMinutes when the result would leave the
// calendar day. Activities do not span midnight; the caller must cap the end
// time or roll onto the next date explicitly.
var ErrPastMidnight = errors.New("time outside calendar day")

// ToMinutes parses a wall-clock "HH:MM" string into minutes from midnight.
func ToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return hours*60 + minutes, nil
}

// FormatMinutes renders minutes from midnight as a zero-padded "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Duration returns end minus start in minutes. The result is negative when
// end precedes start; callers must treat a non-positive result as invalid
// input, since an activity cannot have zero or negative duration.
func Duration(start, end string) (int, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// AddMinutes shifts a wall-clock time by delta minutes, carrying across hour
// boundaries. It refuses to cross midnight in either direction.
func AddMinutes(start string, delta int) (string, error) {
	m, err := ToMinutes(start)
	if err != nil {
		return "", err
	}
	m += delta
	if m < 0 || m >= MinutesPerDay {
		return "", fmt.Errorf("%w: %s %+d minutes", ErrPastMidnight, start, delta)
	}
	return FormatMinutes(m), nil
}
