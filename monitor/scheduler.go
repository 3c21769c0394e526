package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/theoremus-urban-solutions/commute-monitor/itinerary"
	"github.com/theoremus-urban-solutions/commute-monitor/provider"
	"github.com/theoremus-urban-solutions/commute-monitor/realtime"
	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// Scheduler defaults. The tick period is fixed; the rest is configurable.
const (
	TickInterval = 60 * time.Second

	defaultCallTimeout     = 15 * time.Second
	defaultMaxConcurrent   = 4
	defaultDebounceMinutes = 5

	// alternativeSearchDelayMinutes bounds upstream call volume: the
	// alternative search only runs past this aggregate delay unless a leg
	// is outright cancelled.
	alternativeSearchDelayMinutes = 15
)

// SchedulerConfig carries the Scheduler's collaborators and tuning.
// Clock, Feed and tuning fields are optional.
type SchedulerConfig struct {
	Clock      Clock
	Provider   provider.ItineraryProvider
	Dispatcher Dispatcher
	Routes     RouteStore
	Feed       *realtime.Feed

	CallTimeout     time.Duration
	MaxConcurrent   int64
	DebounceMinutes int
}

// Scheduler drives the monitoring loop. Construct with NewScheduler and
// run with Run; Tick is exported for deterministic tests and the oneshot
// CLI mode.
type Scheduler struct {
	clock      Clock
	provider   provider.ItineraryProvider
	dispatcher Dispatcher
	routes     RouteStore
	feed       *realtime.Feed
	synth      *itinerary.Synthesizer
	finder     *AlternativeFinder

	callTimeout     time.Duration
	debounceMinutes int
	sem             *semaphore.Weighted

	states *stateMap
}

// NewScheduler validates the configuration and builds a Scheduler.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.Provider == nil {
		return nil, errors.New("monitor: itinerary provider is required")
	}
	if cfg.Dispatcher == nil {
		return nil, errors.New("monitor: dispatcher is required")
	}
	if cfg.Routes == nil {
		return nil, errors.New("monitor: route store is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}
	if cfg.DebounceMinutes <= 0 {
		cfg.DebounceMinutes = defaultDebounceMinutes
	}

	synth := itinerary.NewSynthesizer()
	return &Scheduler{
		clock:           cfg.Clock,
		provider:        cfg.Provider,
		dispatcher:      cfg.Dispatcher,
		routes:          cfg.Routes,
		feed:            cfg.Feed,
		synth:           synth,
		finder:          NewAlternativeFinder(cfg.Provider, synth, cfg.Feed),
		callTimeout:     cfg.CallTimeout,
		debounceMinutes: cfg.DebounceMinutes,
		sem:             semaphore.NewWeighted(cfg.MaxConcurrent),
		states:          newStateMap(),
	}, nil
}

// Run drives the tick loop until ctx is cancelled. The ticker is stopped
// on the way out; in-flight route evaluations are awaited by their tick.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	log.Printf("monitor: scheduler started, tick interval %s", TickInterval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("monitor: scheduler stopping: %v", ctx.Err())
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick evaluates all routes active for the current weekday. Routes fan out
// concurrently under the semaphore bound; the tick returns when every
// evaluation it started has finished.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.clock.Now()
	s.states.sweep(now)

	if s.feed != nil {
		refreshCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		if err := s.feed.Refresh(refreshCtx); err != nil {
			log.Printf("monitor: realtime overlay refresh failed, continuing with planned data: %v", err)
		}
		cancel()
	}

	routes, err := s.routes.ActiveRoutesForWeekday(ctx, now.Weekday())
	if err != nil {
		log.Printf("monitor: loading routes failed, skipping tick: %v", err)
		return
	}

	var wg sync.WaitGroup
	for i := range routes {
		route := routes[i]
		if !route.NotificationsEnabled || !route.ActiveOn(now.Weekday()) {
			continue
		}
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer s.sem.Release(1)
			s.evaluateRoute(ctx, now, &route)
		}()
	}
	wg.Wait()
}

// evaluateRoute runs one route's per-tick work in causal order: reminder,
// then delay check, then alternative search.
func (s *Scheduler) evaluateRoute(ctx context.Context, now time.Time, route *transit.CommuteRoute) {
	departure := route.PreferredTimeOn(now)
	windowOpens := departure.Add(-time.Duration(route.AlertLeadMinutes) * time.Minute)

	key := stateKey(route.UserID, route.ID)
	if now.Before(windowOpens) || now.After(departure) {
		if _, ok := s.states.get(key); ok && now.After(departure) {
			s.states.delete(key)
		}
		return
	}

	st := s.states.getOrCreate(key)
	if !st.mu.TryLock() {
		// Previous evaluation of this route is still in flight; one route
		// is never evaluated twice concurrently.
		return
	}
	defer st.mu.Unlock()

	if !st.IsAlertWindowOpen {
		st.IsAlertWindowOpen = true
		st.AlertFireTime = now
		st.ScheduledDeparture = departure
		s.dispatcher.Emit(transit.NewAlertEvent(
			transit.AlertDepartureReminder, route,
			"Time to get ready",
			fmt.Sprintf("Your trip departs at %s.", departure.Format("15:04")),
			transit.SeverityLow, now))
	}

	it, err := s.currentItinerary(ctx, route, departure)
	if err != nil {
		// Failures and empty searches skip the tick for this route. The
		// previously observed delay stays put: a lookup problem must not
		// read as "delay resolved".
		log.Printf("monitor: route %s: skipping tick: %v", route.ID, err)
		return
	}

	ev := Evaluate(it)
	s.applyEvaluation(ctx, now, route, st, it, ev)
	st.LastCheckedAt = now
}

// currentItinerary searches the upstream and synthesizes the best current
// candidate. Malformed candidates are discarded; if all candidates are
// malformed the tick is a no-op for this route.
func (s *Scheduler) currentItinerary(ctx context.Context, route *transit.CommuteRoute, departure time.Time) (*transit.Itinerary, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	trips, err := s.provider.SearchTrips(callCtx, route.OriginStopID, route.DestinationStopID, departure, route.TimeMode)
	if err != nil {
		return nil, err
	}

	for _, raw := range trips {
		it, synthErr := s.synth.Synthesize(raw)
		if synthErr != nil {
			log.Printf("monitor: route %s: discarding malformed candidate: %v", route.ID, synthErr)
			continue
		}
		if s.feed != nil {
			s.feed.Annotate(it)
		}
		return it, nil
	}
	return nil, fmt.Errorf("all candidates malformed: %w", transit.ErrMalformedUpstreamData)
}

// applyEvaluation turns an evaluation into alerts, honoring the debounce.
func (s *Scheduler) applyEvaluation(ctx context.Context, now time.Time, route *transit.CommuteRoute, st *routeState, it *transit.Itinerary, ev Evaluation) {
	delayDelta := ev.TotalDelayMinutes - st.LastObservedDelayMinutes
	if delayDelta < 0 {
		delayDelta = -delayDelta
	}
	flagsFlipped := ev.HasCancellations != st.lastCancelled || ev.MissedConnectionRisk != st.lastRisk

	switch {
	case st.LastObservedDelayMinutes > 0 && ev.TotalDelayMinutes == 0 && !ev.HasCancellations:
		s.dispatcher.Emit(transit.NewAlertEvent(
			transit.AlertDelayResolved, route,
			"Back on schedule",
			fmt.Sprintf("Your %s trip is running on time again.", route.PreferredTime),
			transit.SeverityLow, now))

	case (delayDelta >= s.debounceMinutes || flagsFlipped) &&
		(ev.TotalDelayMinutes >= route.DelayAlertThresholdMinutes || ev.HasCancellations):
		severity := transit.SeverityMedium
		if ev.HasCancellations || ev.MissedConnectionRisk {
			severity = transit.SeverityHigh
		}
		s.dispatcher.Emit(transit.NewAlertEvent(
			transit.AlertDelayDetected, route,
			"Delay on your commute",
			delayMessage(ev), severity, now))
	}

	if s.shouldSearchAlternative(ev) {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		alt, err := s.finder.FindBetter(callCtx, route, it, now)
		cancel()
		switch {
		case err != nil:
			log.Printf("monitor: route %s: alternative search failed: %v", route.ID, err)
		case alt != nil:
			s.dispatcher.Emit(transit.NewAlertEvent(
				transit.AlertAlternativeAvailable, route,
				"Faster option available",
				fmt.Sprintf("Leaving at %s saves about %d min over your delayed trip.",
					alt.Itinerary.ExpectedDeparture.Format("15:04"), alt.TimeSavedMinutes),
				transit.SeverityMedium, now))
		}
	}

	st.LastObservedDelayMinutes = ev.TotalDelayMinutes
	st.lastCancelled = ev.HasCancellations
	st.lastRisk = ev.MissedConnectionRisk
}

// shouldSearchAlternative bounds upstream call volume: search on any
// cancellation, or on missed-connection risk once the delay is past the
// alternative-search threshold.
func (s *Scheduler) shouldSearchAlternative(ev Evaluation) bool {
	if ev.HasCancellations {
		return true
	}
	return ev.MissedConnectionRisk && ev.TotalDelayMinutes > alternativeSearchDelayMinutes
}

func delayMessage(ev Evaluation) string {
	switch {
	case ev.HasCancellations && ev.MissedConnectionRisk:
		return fmt.Sprintf("A leg of your trip is cancelled and the %d min delay puts your connection at risk.", ev.TotalDelayMinutes)
	case ev.HasCancellations:
		return "A leg of your trip is cancelled."
	case ev.MissedConnectionRisk:
		return fmt.Sprintf("Running %d min late; you may miss your connection.", ev.TotalDelayMinutes)
	default:
		return fmt.Sprintf("Your trip is running %d min late.", ev.TotalDelayMinutes)
	}
}

// ActiveStates reports how many routes are currently inside their alert
// window.
func (s *Scheduler) ActiveStates() int {
	return s.states.size()
}
