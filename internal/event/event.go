// Package event defines the calendar event domain model together with
// search filtering, overlap detection, and bounded recurrence expansion.
package event

// RepeatType enumerates the supported recurrence frequencies.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// Repeat describes how an event recurs. Interval carries no meaning when
// Type is RepeatNone. EndDate, when set, bounds the recurrence inclusively.
type Repeat struct {
	Type     RepeatType `json:"type"`
	Interval int        `json:"interval"`
	EndDate  string     `json:"endDate,omitempty"`
}

// Event is the central entity. ID is assigned by the store on creation and
// never reassigned; an event without an ID is an unsaved draft.
type Event struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Repeat      Repeat `json:"repeat"`
	// NotificationTime is the notification lead time in minutes before
	// StartTime. The due window excludes the start itself, so 0 never fires.
	NotificationTime int `json:"notificationTime"`
}

// OnDay returns the events whose date has the given day-of-month component.
// Days outside 1..31 match nothing.
func OnDay(events []Event, day int) []Event {
	if day < 1 || day > 31 {
		return []Event{}
	}
	out := []Event{}
	for _, ev := range events {
		d, err := calendarDay(ev.Date)
		if err == nil && d == day {
			out = append(out, ev)
		}
	}
	return out
}

func calendarDay(date string) (int, error) {
	t, err := parseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Day(), nil
}
