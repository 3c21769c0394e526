package monitor

import (
	"context"
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// Dispatcher receives structured alert events. Emit is fire-and-forget;
// delivery and persistence are the surrounding product's concern.
type Dispatcher interface {
	Emit(event transit.AlertEvent)
}

// RouteStore is the read-only snapshot source for saved commute routes.
// The scheduler re-reads it every tick; results are a point-in-time
// snapshot with no transactional semantics.
type RouteStore interface {
	ActiveRoutesForWeekday(ctx context.Context, weekday time.Weekday) ([]transit.CommuteRoute, error)
}

// Clock abstracts wall-clock time so tests can drive the scheduler
// deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
