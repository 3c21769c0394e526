package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/commute-monitor/provider"
	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// minTransferWalk floors synthetic transfer walks so an itinerary never
// carries a zero-duration leg.
const minTransferWalk = 1 * time.Minute

// Synthesizer converts raw upstream trips into canonical itineraries.
type Synthesizer struct{}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize normalizes one raw trip. It fails with a
// transit.ErrMalformedUpstreamData-wrapped error when required leg fields
// are absent; callers discard the trip and move on.
func (s *Synthesizer) Synthesize(raw provider.RawTrip) (*transit.Itinerary, error) {
	if len(raw.Legs) == 0 {
		return nil, fmt.Errorf("%w: trip %s has no legs", transit.ErrMalformedUpstreamData, raw.ID)
	}

	it := &transit.Itinerary{
		ID:   raw.ID,
		Legs: make([]transit.Leg, 0, len(raw.Legs)+1),
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}

	for i, rawLeg := range raw.Legs {
		// A change of stop point inside one physical complex becomes an
		// explicit walk leg so the leg list stays contiguous.
		if rawLeg.SameComplexTransfer && len(it.Legs) > 0 {
			prev := it.Legs[len(it.Legs)-1]
			it.Legs = append(it.Legs, transferWalk(prev.To, rawLeg))
		}

		switch rawLeg.Type {
		case provider.LegTypeWalk:
			leg, err := s.walkLeg(raw.ID, i, rawLeg)
			if err != nil {
				return nil, err
			}
			it.Legs = append(it.Legs, leg)
		case provider.LegTypeTransit:
			leg, err := s.transitLeg(raw.ID, i, rawLeg)
			if err != nil {
				return nil, err
			}
			it.Legs = append(it.Legs, leg)
		default:
			return nil, fmt.Errorf("%w: trip %s leg %d has unknown type %q",
				transit.ErrMalformedUpstreamData, raw.ID, i, rawLeg.Type)
		}
	}

	it.RecomputeTimes()
	if it.PlannedDeparture.IsZero() || it.PlannedArrival.IsZero() {
		return nil, fmt.Errorf("%w: trip %s has no transit legs", transit.ErrMalformedUpstreamData, raw.ID)
	}
	return it, nil
}

func (s *Synthesizer) walkLeg(tripID string, idx int, raw provider.RawLeg) (transit.Leg, error) {
	if raw.Origin.ID == "" || raw.Destination.ID == "" {
		return transit.Leg{}, fmt.Errorf("%w: trip %s walk leg %d missing stops",
			transit.ErrMalformedUpstreamData, tripID, idx)
	}
	duration := time.Duration(raw.WalkSeconds) * time.Second
	if duration < minTransferWalk {
		duration = minTransferWalk
	}
	return transit.Leg{
		Kind:            transit.LegWalk,
		From:            stopArea(raw.Origin),
		To:              stopArea(raw.Destination),
		DurationMinutes: int(duration.Minutes()),
	}, nil
}

func (s *Synthesizer) transitLeg(tripID string, idx int, raw provider.RawLeg) (transit.Leg, error) {
	switch {
	case raw.Line == nil:
		return transit.Leg{}, fmt.Errorf("%w: trip %s transit leg %d missing line",
			transit.ErrMalformedUpstreamData, tripID, idx)
	case raw.Origin.ID == "" || raw.Destination.ID == "":
		return transit.Leg{}, fmt.Errorf("%w: trip %s transit leg %d missing stops",
			transit.ErrMalformedUpstreamData, tripID, idx)
	case raw.PlannedDeparture.IsZero() || raw.PlannedArrival.IsZero():
		return transit.Leg{}, fmt.Errorf("%w: trip %s transit leg %d missing planned times",
			transit.ErrMalformedUpstreamData, tripID, idx)
	}

	line := ClassifyLine(raw.Line)
	leg := transit.Leg{
		Kind:             transit.LegTransit,
		From:             stopArea(raw.Origin),
		To:               stopArea(raw.Destination),
		Line:             &line,
		TripID:           raw.TripID,
		PlannedDeparture: raw.PlannedDeparture,
		PlannedArrival:   raw.PlannedArrival,
		Platform:         raw.Platform,
		Cancelled:        raw.Cancelled,
	}

	// Expected times default to planned times when the upstream supplies
	// no live estimate. HasLiveData keeps the distinction: a fallback must
	// never read as "on time".
	leg.ExpectedDeparture = raw.PlannedDeparture
	leg.ExpectedArrival = raw.PlannedArrival
	if raw.ExpectedDeparture != nil || raw.ExpectedArrival != nil {
		leg.HasLiveData = true
		if raw.ExpectedDeparture != nil {
			leg.ExpectedDeparture = *raw.ExpectedDeparture
		}
		if raw.ExpectedArrival != nil {
			leg.ExpectedArrival = *raw.ExpectedArrival
		}
	}
	return leg, nil
}

// transferWalk builds the synthetic walk covering a same-complex stop
// change before the next leg boards.
func transferWalk(from transit.StopArea, next provider.RawLeg) transit.Leg {
	duration := time.Duration(next.TransferWalkSeconds) * time.Second
	if duration < minTransferWalk {
		duration = minTransferWalk
	}
	return transit.Leg{
		Kind:            transit.LegWalk,
		From:            from,
		To:              stopArea(next.Origin),
		DurationMinutes: int(duration.Minutes()),
	}
}

func stopArea(raw provider.RawStop) transit.StopArea {
	return transit.StopArea{
		ID:       raw.ID,
		Name:     raw.Name,
		Lat:      raw.Lat,
		Lon:      raw.Lon,
		Category: provider.StopCategoryFromCode(raw.CategoryCode),
	}
}
