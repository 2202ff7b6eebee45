package event

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Occurrence is a single concrete instance of a possibly recurring event.
type Occurrence struct {
	Event Event  `json:"event"`
	Date  string `json:"date"`
}

var frequencies = map[RepeatType]rrule.Frequency{
	RepeatDaily:   rrule.DAILY,
	RepeatWeekly:  rrule.WEEKLY,
	RepeatMonthly: rrule.MONTHLY,
	RepeatYearly:  rrule.YEARLY,
}

// Occurrences expands events into concrete dates within [from, to]. The
// expansion is strictly bounded: an event's own end date caps it inclusively
// and events without one stop at the window end. Non-recurring events yield
// at most their single stored date.
func Occurrences(events []Event, from, to time.Time) ([]Occurrence, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("occurrences: window end before start")
	}

	var out []Occurrence
	for _, ev := range events {
		start, err := parseDate(ev.Date)
		if err != nil {
			return nil, fmt.Errorf("occurrences: event %q: %w", ev.ID, err)
		}

		freq, recurring := frequencies[ev.Repeat.Type]
		if !recurring {
			if inWindow(start, from, to) {
				out = append(out, Occurrence{Event: ev, Date: ev.Date})
			}
			continue
		}

		until := to
		if ev.Repeat.EndDate != "" {
			end, err := parseDate(ev.Repeat.EndDate)
			if err != nil {
				return nil, fmt.Errorf("occurrences: event %q end date: %w", ev.ID, err)
			}
			if end.Before(until) {
				until = end
			}
		}

		interval := ev.Repeat.Interval
		if interval < 1 {
			interval = 1
		}
		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:     freq,
			Interval: interval,
			Dtstart:  start,
			Until:    until,
		})
		if err != nil {
			return nil, fmt.Errorf("occurrences: event %q: %w", ev.ID, err)
		}

		for _, t := range rule.Between(from, to, true) {
			out = append(out, Occurrence{Event: ev, Date: t.Format("2006-01-02")})
		}
	}
	return out, nil
}

func inWindow(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}
