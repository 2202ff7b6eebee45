package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minjae-im/dallyeok/internal/holiday"
	"github.com/minjae-im/dallyeok/internal/notify"
	"github.com/minjae-im/dallyeok/internal/store"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /stream inside the auth group.
func NewRouter(db *store.DB, scheduler *notify.Scheduler, holidays *holiday.Source, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(db, scheduler, holidays)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Event store contract consumed by the sync layer.
	r.Get("/events", h.ListEvents)
	r.Post("/events", h.CreateEvent)
	r.Put("/events/{id}", h.UpdateEvent)
	r.Delete("/events/{id}", h.DeleteEvent)

	// Calendar views.
	r.Get("/view", h.View)
	r.Get("/grid", h.Grid)
	r.Get("/occurrences", h.Occurrences)
	r.Get("/holidays", h.Holidays)

	// Notification queue.
	r.Get("/notifications", h.Notifications)
	r.Delete("/notifications/{index}", h.RemoveNotification)
	r.Post("/notifications/tick", h.TickNow)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/stream", sseHandler.ServeHTTP)
	}

	return r
}
