package notify

import (
	"sync"
	"time"

	"github.com/minjae-im/dallyeok/internal/event"
)

// Notification is an entry in the display queue. It stays queued until the
// user removes it; there is no expiry.
type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Scheduler owns the notification queue and the session dedup set. Both are
// explicit per-instance state, so independent schedulers never
// cross-contaminate, and both start empty on construction with nothing
// persisted. Safe for concurrent use.
type Scheduler struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	queue []Notification
}

// NewScheduler returns a scheduler with empty session state.
func NewScheduler() *Scheduler {
	return &Scheduler{seen: make(map[string]struct{})}
}

// Tick scans events against now, queues a notification for each newly due
// event, marks its id as seen, and returns the newly emitted entries. An id
// already seen this session never re-emits, even after its queue entry has
// been removed.
func (s *Scheduler) Tick(events []event.Event, now time.Time) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := Upcoming(events, now, s.seen)
	emitted := make([]Notification, 0, len(due))
	for _, ev := range due {
		n := Notification{ID: ev.ID, Message: Message(ev)}
		s.seen[ev.ID] = struct{}{}
		s.queue = append(s.queue, n)
		emitted = append(emitted, n)
	}
	return emitted
}

// Notifications returns a snapshot of the current queue.
func (s *Scheduler) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.queue))
	copy(out, s.queue)
	return out
}

// Remove drops the queue entry at index. The dedup set is untouched, so a
// dismissed notification does not fire again. Out-of-range indexes are
// ignored.
func (s *Scheduler) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.queue) {
		return
	}
	s.queue = append(s.queue[:index], s.queue[index+1:]...)
}
