package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minjae-im/dallyeok/internal/apperr"
	"github.com/minjae-im/dallyeok/internal/calendar"
	"github.com/minjae-im/dallyeok/internal/event"
	"github.com/minjae-im/dallyeok/internal/holiday"
	"github.com/minjae-im/dallyeok/internal/notify"
	"github.com/minjae-im/dallyeok/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	db        *store.DB
	scheduler *notify.Scheduler
	holidays  *holiday.Source
}

// NewHandler creates a new Handler.
func NewHandler(db *store.DB, scheduler *notify.Scheduler, holidays *holiday.Source) *Handler {
	return &Handler{db: db, scheduler: scheduler, holidays: holidays}
}

// ListEvents handles GET /api/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.db.List(r.Context())
	if err != nil {
		slog.Error("list events failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: events})
}

// CreateEvent handles POST /api/events. The server keeps a client-supplied
// id and assigns the next one otherwise.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var ev event.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := ev.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	created, err := h.db.Create(r.Context(), ev)
	if err != nil {
		slog.Error("create event failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateEvent handles PUT /api/events/{id}. Fields absent from the body
// fall back to the stored values (merge semantics).
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")

	existing, err := h.db.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("event not found"))
		} else {
			slog.Error("update event failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	// Decoding the body over the stored copy merges partial updates.
	merged := existing
	if err := json.NewDecoder(r.Body).Decode(&merged); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	merged.ID = id
	if err := merged.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	updated, err := h.db.Update(r.Context(), merged)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("event not found"))
		} else {
			slog.Error("update event failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteEvent handles DELETE /api/events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("event not found"))
		} else {
			slog.Error("delete event failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// View handles GET /api/view?date&view&q: the events visible in the week or
// month containing date, optionally narrowed by a search term.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	current, err := calendar.ParseDate(q.Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'date' must be YYYY-MM-DD"))
		return
	}

	view := event.View(q.Get("view"))
	var label string
	switch view {
	case event.ViewWeek:
		label = calendar.FormatWeek(current)
	case event.ViewMonth:
		label = calendar.FormatMonth(current)
	case event.ViewNone:
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'view' must be week or month"))
		return
	}

	events, err := h.db.List(r.Context())
	if err != nil {
		slog.Error("view query failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ViewResponse{
		Label:  label,
		Events: event.Filtered(events, q.Get("q"), current, view),
	})
}

// Grid handles GET /api/grid?date: the month grid for date's month, with
// each day's events and the month's holidays.
func (h *Handler) Grid(w http.ResponseWriter, r *http.Request) {
	d, err := calendar.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'date' must be YYYY-MM-DD"))
		return
	}

	events, err := h.db.List(r.Context())
	if err != nil {
		slog.Error("grid query failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	monthEvents := event.Filtered(events, "", d, event.ViewMonth)
	days := map[string][]event.Event{}
	for day := 1; day <= calendar.DaysInMonth(d.Year(), int(d.Month())); day++ {
		if onDay := event.OnDay(monthEvents, day); len(onDay) > 0 {
			days[calendar.FormatDate(d, day)] = onDay
		}
	}

	writeJSON(w, http.StatusOK, GridResponse{
		Label:    calendar.FormatMonth(d),
		Weeks:    calendar.WeeksInMonth(d),
		Days:     days,
		Holidays: h.holidays.ForMonth(d),
	})
}

// Occurrences handles GET /api/occurrences?from&to: bounded recurrence
// expansion of all stored events within the window.
func (h *Handler) Occurrences(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := calendar.ParseDate(q.Get("from"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'from' must be YYYY-MM-DD"))
		return
	}
	to, err := calendar.ParseDate(q.Get("to"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'to' must be YYYY-MM-DD"))
		return
	}

	events, err := h.db.List(r.Context())
	if err != nil {
		slog.Error("occurrences query failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	occ, err := event.Occurrences(events, from, to)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if occ == nil {
		occ = []event.Occurrence{}
	}
	writeJSON(w, http.StatusOK, OccurrenceListResponse{Occurrences: occ})
}

// Holidays handles GET /api/holidays?date: the holiday map for date's month.
func (h *Handler) Holidays(w http.ResponseWriter, r *http.Request) {
	d, err := calendar.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'date' must be YYYY-MM-DD"))
		return
	}
	writeJSON(w, http.StatusOK, h.holidays.ForMonth(d))
}

// Notifications handles GET /api/notifications: the pending queue.
func (h *Handler) Notifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, NotificationListResponse{
		Notifications: h.scheduler.Notifications(),
	})
}

// RemoveNotification handles DELETE /api/notifications/{index}: dismisses
// the queue entry at index. Dismissal never re-arms the dedup set.
func (h *Handler) RemoveNotification(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be a non-negative integer"))
		return
	}
	h.scheduler.Remove(index)
	w.WriteHeader(http.StatusNoContent)
}

// TickNow handles POST /api/notifications/tick: runs one scheduler pass
// immediately. Intended for tests and manual poking; the cron tick does the
// same thing every second.
func (h *Handler) TickNow(w http.ResponseWriter, r *http.Request) {
	events, err := h.db.List(r.Context())
	if err != nil {
		slog.Error("tick failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	emitted := h.scheduler.Tick(events, time.Now())
	writeJSON(w, http.StatusOK, NotificationListResponse{Notifications: emitted})
}
