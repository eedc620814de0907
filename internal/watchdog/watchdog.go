// Package watchdog tracks the availability of one external URL as a
// two-state machine and notifies on transitions.
package watchdog

import (
	"log/slog"
	"time"

	"github.com/senoth99/mforwarder/internal/markup"
)

// State is the observed availability of the watched URL.
type State int

const (
	StateUnknown State = iota
	StateUp
	StateDown
)

func (s State) String() string {
	switch s {
	case StateUp:
		return "up"
	case StateDown:
		return "down"
	default:
		return "unknown"
	}
}

// Transition applies one probe observation to the previous state. It
// returns the next state and whether the change warrants a
// notification: the first observation never notifies, and repeated
// identical observations never notify.
func Transition(prev State, up bool) (next State, notify bool) {
	next = StateDown
	if up {
		next = StateUp
	}
	return next, prev != StateUnknown && next != prev
}

// Notifier delivers transition alerts.
type Notifier interface {
	SendMessage(text string) error
}

// Prober checks whether a URL is reachable.
type Prober interface {
	Available(url string) bool
}

// Options configures a Watchdog. Empty messages get defaults derived
// from the URL.
type Options struct {
	URL         string
	Interval    time.Duration
	DownMessage string
	UpMessage   string
}

// Watchdog polls a URL at most once per interval and alerts on state
// transitions. It is driven by Tick from the ingestion loop and is not
// safe for concurrent use.
type Watchdog struct {
	url         string
	interval    time.Duration
	downMessage string
	upMessage   string

	prober   Prober
	notifier Notifier
	logger   *slog.Logger

	state     State
	lastCheck time.Time
	now       func() time.Time
}

// New creates a Watchdog in the unknown state.
func New(opts Options, prober Prober, notifier Notifier, logger *slog.Logger) *Watchdog {
	downMessage := opts.DownMessage
	if downMessage == "" {
		downMessage = "🔴 <b>Watchdog:</b> " + markup.Escape(opts.URL) + " is unreachable"
	}
	upMessage := opts.UpMessage
	if upMessage == "" {
		upMessage = "🟢 <b>Watchdog:</b> " + markup.Escape(opts.URL) + " is reachable again"
	}
	return &Watchdog{
		url:         opts.URL,
		interval:    opts.Interval,
		downMessage: downMessage,
		upMessage:   upMessage,
		prober:      prober,
		notifier:    notifier,
		logger:      logger,
		state:       StateUnknown,
		now:         time.Now,
	}
}

// State returns the last observed state.
func (w *Watchdog) State() State {
	return w.state
}

// Tick runs a probe if the interval has elapsed since the last one.
// The gate uses the monotonic clock carried by time.Time, so wall-clock
// adjustments don't skew it. Notification failures are logged and
// swallowed.
func (w *Watchdog) Tick() {
	now := w.now()
	if !w.lastCheck.IsZero() && now.Sub(w.lastCheck) < w.interval {
		return
	}
	w.lastCheck = now

	up := w.prober.Available(w.url)
	next, notify := Transition(w.state, up)
	if next != w.state {
		w.logger.Info("watchdog state changed", "url", w.url, "from", w.state, "to", next)
	}
	w.state = next

	if !notify {
		return
	}
	message := w.downMessage
	if next == StateUp {
		message = w.upMessage
	}
	if err := w.notifier.SendMessage(message); err != nil {
		w.logger.Error("watchdog notification failed", "url", w.url, "state", next, "error", err)
	}
}
