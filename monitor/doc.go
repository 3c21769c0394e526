// Package monitor is the commute monitoring loop.
//
// A Scheduler owns per-route monitoring state and drives a fixed 60-second
// tick: for every commute route active today it opens the alert window,
// fires the one departure reminder, re-synthesizes the current best
// itinerary, evaluates delay and cancellation signals with a debounce, and
// searches for a materially better alternative when a connection is at
// risk. The Scheduler is an explicit object constructed with an injected
// clock, provider, dispatcher and route store, so tests can time-travel
// deterministically; there is no ambient global state.
//
// Concurrency: each tick fans route evaluations out under a bounded
// semaphore. The state map is locked per route key, so a slow upstream
// call for one route never stalls unrelated routes, and a route still
// being evaluated when the next tick arrives is skipped rather than
// evaluated twice.
package monitor
