// Package notify decides which events are due for a notification and keeps
// the per-session notification queue and dedup state.
package notify

import (
	"fmt"
	"time"

	"github.com/minjae-im/dallyeok/internal/calendar"
	"github.com/minjae-im/dallyeok/internal/event"
)

// Upcoming returns the events whose notification window contains now and
// whose id is not in seen. The window opens NotificationTime minutes before
// the event start and closes at the start itself, start excluded.
func Upcoming(events []event.Event, now time.Time, seen map[string]struct{}) []event.Event {
	out := []event.Event{}
	for _, ev := range events {
		if _, ok := seen[ev.ID]; ok {
			continue
		}
		start, err := calendar.ParseDateTime(ev.Date, ev.StartTime)
		if err != nil {
			continue
		}
		untilStart := start.Sub(now)
		if untilStart > 0 && untilStart <= time.Duration(ev.NotificationTime)*time.Minute {
			out = append(out, ev)
		}
	}
	return out
}

// Message formats the user-facing notification text for an event.
func Message(ev event.Event) string {
	return fmt.Sprintf("%d분 후 %s 일정이 시작됩니다.", ev.NotificationTime, ev.Title)
}
