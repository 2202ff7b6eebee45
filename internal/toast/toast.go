// Package toast carries user-facing operation feedback from the core to
// whatever surface displays it. The core only ever raises toasts through
// the Notifier interface; presentation lives elsewhere.
package toast

import (
	"log/slog"
	"time"
)

// Status classifies a toast.
type Status string

const (
	StatusInfo    Status = "info"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Toast is a single user-visible message.
type Toast struct {
	Title      string        `json:"title"`
	Status     Status        `json:"status"`
	Duration   time.Duration `json:"duration"`
	IsClosable bool          `json:"isClosable"`
}

// New returns a toast with the conventional display settings.
func New(title string, status Status) Toast {
	return Toast{Title: title, Status: status, Duration: 3 * time.Second, IsClosable: true}
}

// Notifier accepts toasts for display.
type Notifier interface {
	Notify(t Toast)
}

// LogNotifier writes toasts to a structured logger. It is the fallback sink
// and also useful in tests.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(t Toast) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("toast",
		slog.String("title", t.Title),
		slog.String("status", string(t.Status)))
}

// Multi fans a toast out to several notifiers.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(t Toast) {
	for _, n := range m {
		n.Notify(t)
	}
}

// Recorder collects toasts for inspection in tests.
type Recorder struct {
	Toasts []Toast
}

// Notify implements Notifier.
func (r *Recorder) Notify(t Toast) {
	r.Toasts = append(r.Toasts, t)
}
