package api

import (
	"github.com/minjae-im/dallyeok/internal/event"
	"github.com/minjae-im/dallyeok/internal/notify"
)

// EventListResponse wraps the full event list, matching the remote store
// contract consumed by the sync layer.
type EventListResponse struct {
	Events []event.Event `json:"events"`
}

// ViewResponse is the payload of a calendar view query: the events visible
// in the window plus the label the UI renders above the grid.
type ViewResponse struct {
	Label  string        `json:"label"`
	Events []event.Event `json:"events"`
}

// GridResponse is a month grid: the Sunday-first week rows plus the
// month's events bucketed per day and its holidays.
type GridResponse struct {
	Label    string                   `json:"label"`
	Weeks    [][7]int                 `json:"weeks"`
	Days     map[string][]event.Event `json:"days"`
	Holidays map[string]string        `json:"holidays"`
}

// OccurrenceListResponse wraps bounded recurrence expansion results.
type OccurrenceListResponse struct {
	Occurrences []event.Occurrence `json:"occurrences"`
}

// NotificationListResponse wraps the pending notification queue.
type NotificationListResponse struct {
	Notifications []notify.Notification `json:"notifications"`
}
