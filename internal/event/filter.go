package event

import (
	"strings"
	"time"

	"github.com/minjae-im/dallyeok/internal/calendar"
)

// View selects the visible window of the calendar.
type View string

const (
	// ViewNone disables window filtering.
	ViewNone  View = ""
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

func parseDate(s string) (time.Time, error) {
	return calendar.ParseDate(s)
}

func parseDateTime(date, clock string) (time.Time, error) {
	return calendar.ParseDateTime(date, clock)
}

// Filtered returns the events matching the free-text search term that also
// fall inside the current view window. The two filters compose as AND and
// the input order is preserved.
func Filtered(events []Event, term string, current time.Time, view View) []Event {
	out := []Event{}
	for _, ev := range events {
		if !matchesTerm(ev, term) {
			continue
		}
		if !inView(ev, current, view) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// matchesTerm reports whether term occurs, case-insensitively, in the
// event's title, description, or location. The empty term matches all.
func matchesTerm(ev Event, term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(ev.Title), t) ||
		strings.Contains(strings.ToLower(ev.Description), t) ||
		strings.Contains(strings.ToLower(ev.Location), t)
}

func inView(ev Event, current time.Time, view View) bool {
	d, err := parseDate(ev.Date)
	if err != nil {
		return false
	}
	switch view {
	case ViewWeek:
		week := calendar.WeekDates(current)
		return calendar.IsDateInRange(d, week[0], week[6])
	case ViewMonth:
		first := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location())
		last := time.Date(current.Year(), current.Month(), calendar.DaysInMonth(current.Year(), int(current.Month())), 0, 0, 0, 0, current.Location())
		return calendar.IsDateInRange(d, first, last)
	default:
		return true
	}
}
