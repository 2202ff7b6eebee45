package notify

import (
	"testing"
	"time"

	"github.com/minjae-im/dallyeok/internal/event"
)

func fixtureEvents() []event.Event {
	return []event.Event{
		{
			ID: "1", Title: "이벤트 1", Date: "2024-07-01",
			StartTime: "10:00", EndTime: "11:00", NotificationTime: 10,
		},
		{
			ID: "2", Title: "이벤트 2", Date: "2024-07-02",
			StartTime: "14:00", EndTime: "15:00", NotificationTime: 20,
		},
		{
			ID: "3", Title: "이벤트 3", Date: "2024-07-10",
			StartTime: "09:00", EndTime: "10:00", NotificationTime: 5,
		},
	}
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02T15:04", s, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}

func TestUpcoming(t *testing.T) {
	events := fixtureEvents()

	tests := []struct {
		name    string
		now     time.Time
		seen    map[string]struct{}
		wantIDs []string
	}{
		{"exactly at window open", at(t, "2024-07-01T09:50"), nil, []string{"1"}},
		{"already notified is excluded", at(t, "2024-07-01T09:50"), map[string]struct{}{"1": {}}, nil},
		{"before window", at(t, "2024-07-01T08:00"), nil, nil},
		{"after start", at(t, "2024-07-01T10:30"), nil, nil},
		{"at start is excluded", at(t, "2024-07-01T10:00"), nil, nil},
		{"one minute before start", at(t, "2024-07-01T09:59"), nil, []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Upcoming(events, tt.now, tt.seen)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("upcoming[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestMessage(t *testing.T) {
	ev := event.Event{Title: "이벤트 1", NotificationTime: 10}
	want := "10분 후 이벤트 1 일정이 시작됩니다."
	if got := Message(ev); got != want {
		t.Errorf("Message = %q, want %q", got, want)
	}
}

func TestSchedulerTickDedup(t *testing.T) {
	s := NewScheduler()
	events := []event.Event{{
		ID: "1", Title: "test", Date: "2024-10-15",
		StartTime: "10:00", EndTime: "11:00", NotificationTime: 10,
	}}
	now := at(t, "2024-10-15T09:50")

	if got := s.Notifications(); len(got) != 0 {
		t.Fatalf("fresh scheduler has %d notifications", len(got))
	}

	emitted := s.Tick(events, now)
	if len(emitted) != 1 || emitted[0].ID != "1" {
		t.Fatalf("first tick emitted %v", emitted)
	}
	if emitted[0].Message != Message(events[0]) {
		t.Errorf("message = %q", emitted[0].Message)
	}

	// Second tick at the same or a later instant must not re-emit.
	if again := s.Tick(events, now); len(again) != 0 {
		t.Errorf("second tick emitted %v", again)
	}
	if later := s.Tick(events, now.Add(time.Minute)); len(later) != 0 {
		t.Errorf("later tick emitted %v", later)
	}
	if got := s.Notifications(); len(got) != 1 {
		t.Errorf("queue has %d entries, want 1", len(got))
	}
}

func TestSchedulerRemove(t *testing.T) {
	s := NewScheduler()
	events := []event.Event{{
		ID: "1", Title: "test", Date: "2024-10-15",
		StartTime: "10:00", EndTime: "11:00", NotificationTime: 10,
	}}
	now := at(t, "2024-10-15T09:50")

	s.Tick(events, now)
	s.Remove(0)
	if got := s.Notifications(); len(got) != 0 {
		t.Fatalf("queue not empty after remove: %v", got)
	}

	// Removal never resets the dedup set.
	if again := s.Tick(events, now); len(again) != 0 {
		t.Errorf("dismissed notification re-fired: %v", again)
	}

	// Out-of-range removals are ignored.
	s.Remove(0)
	s.Remove(-1)
}

func TestSchedulersAreIndependent(t *testing.T) {
	events := []event.Event{{
		ID: "1", Title: "test", Date: "2024-10-15",
		StartTime: "10:00", EndTime: "11:00", NotificationTime: 10,
	}}
	now := at(t, "2024-10-15T09:50")

	a, b := NewScheduler(), NewScheduler()
	if got := a.Tick(events, now); len(got) != 1 {
		t.Fatalf("a emitted %v", got)
	}
	// a's dedup state must not leak into b.
	if got := b.Tick(events, now); len(got) != 1 {
		t.Errorf("b emitted %v, want its own notification", got)
	}
}
