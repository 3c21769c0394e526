package monitor

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/itinerary"
	"github.com/theoremus-urban-solutions/commute-monitor/provider"
	"github.com/theoremus-urban-solutions/commute-monitor/realtime"
	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// Probe schedule for alternative departures: 6 candidates at 5-minute
// increments over the next 30 minutes.
const (
	alternativeProbes    = 6
	alternativeProbeStep = 5 * time.Minute

	// maxTimeDifferenceMinutes rejects alternatives that arrive much
	// later even if they are formally less delayed.
	maxTimeDifferenceMinutes = 30
)

// AlternativeFinder probes nearby departure times for a materially better
// itinerary than the one currently monitored.
type AlternativeFinder struct {
	provider provider.ItineraryProvider
	synth    *itinerary.Synthesizer
	feed     *realtime.Feed // optional live overlay, may be nil
}

// NewAlternativeFinder creates an AlternativeFinder. feed may be nil.
func NewAlternativeFinder(p provider.ItineraryProvider, synth *itinerary.Synthesizer, feed *realtime.Feed) *AlternativeFinder {
	return &AlternativeFinder{provider: p, synth: synth, feed: feed}
}

// Alternative is a qualifying better itinerary and the minutes it saves
// over staying on the delayed one.
type Alternative struct {
	Itinerary        *transit.Itinerary
	TimeSavedMinutes int
}

// FindBetter probes candidate departures after now and returns the best
// qualifying alternative, or nil when none qualifies. A candidate
// qualifies when its total time difference versus the current itinerary
// is below both the current delay and the hard 30-minute bound; among
// qualifying candidates the one saving the most time wins. The returned
// alternative always has TimeSavedMinutes > 0.
func (f *AlternativeFinder) FindBetter(ctx context.Context, route *transit.CommuteRoute, current *transit.Itinerary, now time.Time) (*Alternative, error) {
	currentDelay := Evaluate(current).TotalDelayMinutes

	var best *Alternative
	for i := 1; i <= alternativeProbes; i++ {
		probeAt := now.Add(time.Duration(i) * alternativeProbeStep)

		candidate, err := f.searchOne(ctx, route, probeAt)
		if err != nil {
			if errors.Is(err, transit.ErrNoItineraryFound) || errors.Is(err, transit.ErrMalformedUpstreamData) {
				continue
			}
			return nil, err
		}
		if candidate.ID == current.ID {
			continue
		}

		candidateDelay := Evaluate(candidate).TotalDelayMinutes
		arrivalDiff := int(candidate.PlannedArrival.Sub(current.PlannedArrival).Minutes())
		totalTimeDifference := arrivalDiff + candidateDelay - currentDelay

		if totalTimeDifference >= currentDelay || totalTimeDifference >= maxTimeDifferenceMinutes {
			continue
		}
		timeSaved := currentDelay - totalTimeDifference
		if timeSaved <= 0 {
			continue
		}
		if best == nil || timeSaved > best.TimeSavedMinutes {
			best = &Alternative{Itinerary: candidate, TimeSavedMinutes: timeSaved}
		}
	}
	return best, nil
}

// searchOne runs one probe: search departures at probeAt, synthesize the
// first well-formed candidate, annotate with live data when available.
func (f *AlternativeFinder) searchOne(ctx context.Context, route *transit.CommuteRoute, probeAt time.Time) (*transit.Itinerary, error) {
	trips, err := f.provider.SearchTrips(ctx, route.OriginStopID, route.DestinationStopID, probeAt, transit.TimeModeDepart)
	if err != nil {
		return nil, err
	}
	for _, raw := range trips {
		it, err := f.synth.Synthesize(raw)
		if err != nil {
			log.Printf("monitor: discarding malformed alternative candidate for route %s: %v", route.ID, err)
			continue
		}
		if f.feed != nil {
			f.feed.Annotate(it)
		}
		return it, nil
	}
	return nil, transit.ErrMalformedUpstreamData
}
