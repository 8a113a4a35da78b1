// Package agenda turns a provider's flat day-availability list into
// display-ready morning and afternoon sections and tracks the user's
// in-progress hour selection.
package agenda

import (
	"fmt"
	"time"

	"trimly/models"
)

// Slot is one selectable hour, enriched with its display label.
type Slot struct {
	Hour      int
	Available bool
	Label     string
}

// Agenda is a day's availability split at noon. Both sections preserve
// the order of the API response.
type Agenda struct {
	Morning   []Slot
	Afternoon []Slot
}

// Partition splits the day's availability into morning (hour < 12) and
// afternoon (hour >= 12) sections.
func Partition(items []models.AvailabilityItem) Agenda {
	var a Agenda
	for _, item := range items {
		slot := Slot{
			Hour:      item.Hour,
			Available: item.Available,
			Label:     FormatHour(item.Hour),
		}
		if item.Hour < 12 {
			a.Morning = append(a.Morning, slot)
		} else {
			a.Afternoon = append(a.Afternoon, slot)
		}
	}
	return a
}

// FormatHour renders an hour as a zero-padded 24-hour label, e.g. "09:00".
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Selection tracks the single hour the user has chosen, if any. The zero
// value means nothing is selected; hour 0 (midnight) is a valid choice and
// is distinct from the unset state. No availability check happens here —
// the presentation layer disables interaction for unavailable hours.
type Selection struct {
	hour   int
	chosen bool
}

// Choose records the given hour as the current selection.
func (s *Selection) Choose(hour int) {
	s.hour = hour
	s.chosen = true
}

// Clear resets the selection. Called whenever the provider or date
// changes, before the new availability list arrives.
func (s *Selection) Clear() {
	s.hour = 0
	s.chosen = false
}

// Hour returns the selected hour and whether one is chosen at all.
func (s *Selection) Hour() (int, bool) {
	return s.hour, s.chosen
}

// At combines a calendar date with an hour into the appointment moment:
// same day and location, minutes, seconds and nanoseconds zeroed.
func At(date time.Time, hour int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
}

// MinimumDate returns the earliest bookable day: today, or tomorrow once
// the clock has passed 17:00.
func MinimumDate(now time.Time) time.Time {
	if now.Hour() >= 17 {
		return now.AddDate(0, 0, 1)
	}
	return now
}
