package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFilter_ZeroValueShowsEverything(t *testing.T) {
	doc := uuid.New()
	var f Filter
	for _, a := range []*Activity{
		appt(day(2026, 3, 2), "09:00", 30, &doc),
		appt(day(2026, 3, 2), "09:00", 30, nil),
		NewEvent(day(2026, 3, 2), "09:00", 30, nil, "meeting", "#112233"),
	} {
		if !f.Visible(a) {
			t.Errorf("zero-value filter must show %s", a.Kind)
		}
	}
}

func TestFilter_PractitionerSet(t *testing.T) {
	shown := uuid.New()
	hidden := uuid.New()
	f := Filter{Practitioners: map[uuid.UUID]bool{shown: true}}

	if !f.Visible(appt(day(2026, 3, 2), "09:00", 30, &shown)) {
		t.Error("selected practitioner must be visible")
	}
	if f.Visible(appt(day(2026, 3, 2), "09:00", 30, &hidden)) {
		t.Error("unselected practitioner must be hidden")
	}
	// Unbound activities ignore the practitioner set.
	if !f.Visible(appt(day(2026, 3, 2), "09:00", 30, nil)) {
		t.Error("unbound activity must stay visible")
	}
}

func TestFilter_HideEvents(t *testing.T) {
	doc := uuid.New()
	f := Filter{HideEvents: true}
	if f.Visible(NewEvent(day(2026, 3, 2), "09:00", 30, &doc, "course", "#445566")) {
		t.Error("events must be hidden")
	}
	if !f.Visible(appt(day(2026, 3, 2), "09:00", 30, &doc)) {
		t.Error("appointments are not affected by the event toggle")
	}
}

func TestBuildDay_FiltersDateAndVisibility(t *testing.T) {
	doc := uuid.New()
	other := uuid.New()
	date := day(2026, 3, 2)
	activities := []*Activity{
		appt(date, "09:00", 30, &doc),
		appt(day(2026, 3, 3), "09:00", 30, &doc), // other date
		appt(date, "10:00", 30, &other),          // hidden practitioner
	}
	f := Filter{Practitioners: map[uuid.UUID]bool{doc: true}}

	view, err := BuildDay(date, activities, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(view.Placements))
	}
	if view.Placements[0].Activity != activities[0] {
		t.Error("wrong activity selected for the day view")
	}
	if view.Placements[0].Lane.WidthPct != 96 {
		t.Errorf("lone visible activity takes the full width, got %v", view.Placements[0].Lane.WidthPct)
	}
}

func TestBuildWeek_SevenDays(t *testing.T) {
	doc := uuid.New()
	monday := day(2026, 3, 2)
	activities := []*Activity{
		appt(monday, "09:00", 30, &doc),
		appt(monday.AddDate(0, 0, 4), "11:00", 30, &doc),
	}
	days, err := BuildWeek(monday, activities, Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("expected 7 day views, got %d", len(days))
	}
	if len(days[0].Placements) != 1 || len(days[4].Placements) != 1 {
		t.Error("activities must land on their weekday")
	}
	for _, i := range []int{1, 2, 3, 5, 6} {
		if len(days[i].Placements) != 0 {
			t.Errorf("day %d should be empty", i)
		}
	}
}

func TestBuildMonth_CellsSortedByStart(t *testing.T) {
	doc := uuid.New()
	date := day(2026, 2, 10)
	late := appt(date, "16:00", 30, &doc)
	early := appt(date, "08:00", 30, &doc)
	cells, err := BuildMonth(2026, time.February, []*Activity{late, early}, Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 28 {
		t.Fatalf("February 2026 has 28 cells, got %d", len(cells))
	}
	cell := cells[9]
	if !sameDay(cell.Date, date) {
		t.Fatalf("cell 9 date = %v, want %v", cell.Date, date)
	}
	if len(cell.Activities) != 2 {
		t.Fatalf("expected 2 activities in the cell, got %d", len(cell.Activities))
	}
	if cell.Activities[0] != early || cell.Activities[1] != late {
		t.Error("cell activities must be sorted by start time")
	}
}
