package notify

import (
	"log"
	"sync"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// LogDispatcher writes alert events to the process log. It is the default
// collaborator when no delivery layer is wired in.
type LogDispatcher struct{}

// Emit implements monitor.Dispatcher.
func (LogDispatcher) Emit(event transit.AlertEvent) {
	log.Printf("notify: [%s] %s route=%s user=%s severity=%s: %s",
		event.Kind, event.Title, event.RouteID, event.UserID, event.Severity, event.Message)
}

// Recorder retains the most recent alert events in a bounded ring. Tests
// and the oneshot CLI mode use it to inspect what the scheduler emitted.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	events []transit.AlertEvent
}

// NewRecorder creates a Recorder keeping at most limit events.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 100
	}
	return &Recorder{limit: limit}
}

// Emit implements monitor.Dispatcher.
func (r *Recorder) Emit(event transit.AlertEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if len(r.events) > r.limit {
		r.events = r.events[len(r.events)-r.limit:]
	}
}

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []transit.AlertEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]transit.AlertEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
