package monitor

import (
	"sync"
	"time"
)

// MonitoringState is the per-(user,route) alert-window bookkeeping. It is
// ephemeral: created when a route enters its daily alert window,
// discarded once the scheduled departure passes, never persisted, and
// rebuilt each day from the route snapshot and the current time.
type MonitoringState struct {
	IsAlertWindowOpen        bool
	AlertFireTime            time.Time
	ScheduledDeparture       time.Time
	LastObservedDelayMinutes int
	LastCheckedAt            time.Time

	// Flip detection for cancellation/missed-connection alerts.
	lastCancelled bool
	lastRisk      bool
}

// routeState pairs the state with its own lock. Evaluations hold the
// per-key lock for their whole run; TryLock gives at-most-once-per-tick
// semantics without one slow route serializing the others.
type routeState struct {
	mu sync.Mutex
	MonitoringState
}

// stateMap is the concurrently mutated map of active monitoring states.
// The outer mutex only guards map membership; per-route work synchronizes
// on the routeState lock.
type stateMap struct {
	mu     sync.Mutex
	states map[string]*routeState
}

func newStateMap() *stateMap {
	return &stateMap{states: map[string]*routeState{}}
}

func stateKey(userID, routeID string) string {
	return userID + "|" + routeID
}

func (m *stateMap) getOrCreate(key string) *routeState {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[key]
	if !ok {
		st = &routeState{}
		m.states[key] = st
	}
	return st
}

func (m *stateMap) get(key string) (*routeState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[key]
	return st, ok
}

func (m *stateMap) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, key)
}

// sweep drops states whose scheduled departure has passed. States still
// mid-evaluation are left for the next sweep rather than blocked on.
func (m *stateMap) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, st := range m.states {
		if !st.mu.TryLock() {
			continue
		}
		expired := st.IsAlertWindowOpen && now.After(st.ScheduledDeparture)
		st.mu.Unlock()
		if expired {
			delete(m.states, key)
		}
	}
}

// size reports the number of live states.
func (m *stateMap) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}
