package syncer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minjae-im/dallyeok/internal/apperr"
	"github.com/minjae-im/dallyeok/internal/event"
	"github.com/minjae-im/dallyeok/internal/toast"
)

// Toast titles raised by the controller. Every operation outcome produces
// exactly one of these.
const (
	MsgLoaded     = "일정 로딩 완료!"
	MsgLoadFailed = "이벤트 로딩 실패"
	MsgAdded      = "일정이 추가되었습니다."
	MsgUpdated    = "일정이 수정되었습니다."
	MsgSaveFailed = "일정 저장 실패"
	MsgDeleted    = "일정이 삭제되었습니다."
	MsgDelFailed  = "일정 삭제 실패"
)

// Controller owns the authoritative local event list. After every
// successful mutation the list is re-fetched from the store rather than
// patched from the mutation response, so concurrent external changes are
// picked up. The controller is the list's single writer.
type Controller struct {
	client *Client
	toasts toast.Notifier

	mu     sync.RWMutex
	events []event.Event
}

// NewController creates a controller around the given store client and
// toast sink.
func NewController(client *Client, toasts toast.Notifier) *Controller {
	return &Controller{client: client, toasts: toasts}
}

// Events returns a snapshot of the local list.
func (c *Controller) Events() []event.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]event.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Load refreshes the local list from the store. On transport failure the
// list becomes empty and an error toast is raised; on success an
// informational toast is raised.
func (c *Controller) Load(ctx context.Context) error {
	events, err := c.client.FetchEvents(ctx)
	if err != nil {
		c.setEvents(nil)
		c.toasts.Notify(toast.New(MsgLoadFailed, toast.StatusError))
		return err
	}
	c.setEvents(events)
	c.toasts.Notify(toast.New(MsgLoaded, toast.StatusInfo))
	return nil
}

// reconcile re-fetches the list after a successful mutation, without the
// informational toast of Load. A failed re-fetch is reported like a load
// failure.
func (c *Controller) reconcile(ctx context.Context) error {
	events, err := c.client.FetchEvents(ctx)
	if err != nil {
		c.toasts.Notify(toast.New(MsgLoadFailed, toast.StatusError))
		return err
	}
	c.setEvents(events)
	return nil
}

// Refresh quietly re-fetches the list from the store. Unlike Load it does
// not raise an informational toast, so it is suitable for periodic
// background reconciliation.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.reconcile(ctx)
}

// Save creates the event when it has no id and updates it otherwise. The
// event is validated and pre-flighted against the local list for overlaps
// before any transport call; overlapping saves are refused with
// apperr.ErrOverlap unless force is set (the caller's confirmation gate).
// On failure the local list is left untouched and a failure toast raised.
func (c *Controller) Save(ctx context.Context, ev event.Event, force bool) error {
	if err := ev.Validate(); err != nil {
		c.toasts.Notify(toast.New(validationTitle(err), toast.StatusError))
		return err
	}

	if !force {
		if overlapping := event.FindOverlapping(ev, c.Events()); len(overlapping) > 0 {
			return fmt.Errorf("%w: %d existing events", apperr.ErrOverlap, len(overlapping))
		}
	}

	editing := ev.ID != ""
	var err error
	if editing {
		_, err = c.client.UpdateEvent(ctx, ev)
	} else {
		_, err = c.client.CreateEvent(ctx, ev)
	}
	if err != nil {
		c.toasts.Notify(toast.New(MsgSaveFailed, toast.StatusError))
		return err
	}

	if err := c.reconcile(ctx); err != nil {
		return err
	}
	if editing {
		c.toasts.Notify(toast.New(MsgUpdated, toast.StatusSuccess))
	} else {
		c.toasts.Notify(toast.New(MsgAdded, toast.StatusSuccess))
	}
	return nil
}

// Overlapping returns the stored events conflicting with the candidate.
// Callers use it to show the confirmation gate before a forced Save.
func (c *Controller) Overlapping(ev event.Event) []event.Event {
	return event.FindOverlapping(ev, c.Events())
}

// Delete removes the event by id. On failure, including an unknown id, the
// local list is left untouched and a failure toast raised.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.client.DeleteEvent(ctx, id); err != nil {
		c.toasts.Notify(toast.New(MsgDelFailed, toast.StatusError))
		return err
	}
	if err := c.reconcile(ctx); err != nil {
		return err
	}
	c.toasts.Notify(toast.New(MsgDeleted, toast.StatusSuccess))
	return nil
}

func (c *Controller) setEvents(events []event.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = events
}

// validationTitle picks the toast title for a validation error. Validation
// wraps its user-facing message after the sentinel, so the message itself
// is shown rather than the generic save failure.
func validationTitle(err error) string {
	for _, m := range []string{event.MsgCheckTimes, event.MsgMissingFields} {
		if strings.Contains(err.Error(), m) {
			return m
		}
	}
	if msg, ok := strings.CutPrefix(err.Error(), apperr.ErrInvalid.Error()+": "); ok {
		return msg
	}
	return MsgSaveFailed
}
