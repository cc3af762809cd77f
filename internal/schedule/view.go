package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Filter controls which activities are visible on the calendar. The zero
// value shows everything.
type Filter struct {
	// Practitioners is the set of visible practitioner ids. A nil map shows
	// activities of every practitioner. Unbound activities are not affected
	// by this set.
	Practitioners map[uuid.UUID]bool
	// HideEvents is the global toggle that removes event activities.
	HideEvents bool
}

// Visible reports whether the filter shows the given activity.
func (f Filter) Visible(a *Activity) bool {
	if a.Kind == KindEvent && f.HideEvents {
		return false
	}
	if a.PractitionerID == nil {
		return true
	}
	if f.Practitioners == nil {
		return true
	}
	return f.Practitioners[*a.PractitionerID]
}

// DayView is the rendered layout of one calendar day.
type DayView struct {
	Date       time.Time   `json:"date"`
	Placements []Placement `json:"placements"`
}

// BuildDay filters the snapshot down to the given date and visibility, then
// computes the lane layout. The layout is recomputed from scratch on every
// call; there is no incremental state.
func BuildDay(date time.Time, activities []*Activity, f Filter) (*DayView, error) {
	var day []*Activity
	for _, a := range activities {
		if !a.On(date) || !f.Visible(a) {
			continue
		}
		day = append(day, a)
	}
	placements, err := LayoutDay(day)
	if err != nil {
		return nil, err
	}
	return &DayView{Date: date, Placements: placements}, nil
}

// BuildWeek builds seven consecutive day views starting at weekStart.
func BuildWeek(weekStart time.Time, activities []*Activity, f Filter) ([]*DayView, error) {
	days := make([]*DayView, 7)
	for i := range days {
		day, err := BuildDay(weekStart.AddDate(0, 0, i), activities, f)
		if err != nil {
			return nil, err
		}
		days[i] = day
	}
	return days, nil
}

// MonthCell summarizes one day of a month grid. Month cells list their
// activities in start order but carry no lane layout; lanes only matter at
// day/week zoom.
type MonthCell struct {
	Date       time.Time   `json:"date"`
	Activities []*Activity `json:"activities"`
}

// BuildMonth builds one cell per day of the given month.
func BuildMonth(year int, month time.Month, activities []*Activity, f Filter) ([]MonthCell, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]MonthCell, daysInMonth)
	for i := range cells {
		date := first.AddDate(0, 0, i)
		var day []*Activity
		for _, a := range activities {
			if !a.On(date) || !f.Visible(a) {
				continue
			}
			if _, err := a.StartMinutes(); err != nil {
				return nil, err
			}
			day = append(day, a)
		}
		sort.SliceStable(day, func(x, y int) bool {
			sx, _ := day[x].StartMinutes()
			sy, _ := day[y].StartMinutes()
			return sx < sy
		})
		cells[i] = MonthCell{Date: date, Activities: day}
	}
	return cells, nil
}
