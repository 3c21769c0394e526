package transit

import (
	"math"
	"time"
)

// LegKind discriminates the two leg variants.
type LegKind int

const (
	LegWalk LegKind = iota
	LegTransit
)

func (k LegKind) String() string {
	if k == LegWalk {
		return "walk"
	}
	return "transit"
}

// Leg is one uninterrupted segment of an itinerary: a ride on a transit
// line or a walk. Walk legs leave Line nil and the time fields zero; their
// length is DurationMinutes. The legs of one itinerary are temporally
// ordered and contiguous (each leg's To matches the next leg's From).
type Leg struct {
	Kind LegKind
	From StopArea
	To   StopArea

	// Transit fields.
	Line              *Line
	TripID            string
	PlannedDeparture  time.Time
	PlannedArrival    time.Time
	ExpectedDeparture time.Time
	ExpectedArrival   time.Time
	Platform          string
	Cancelled         bool

	// HasLiveData records whether the expected times came from a live
	// estimate. When false, expected equals planned as a display fallback;
	// absence of live data must never be read as "on time".
	HasLiveData bool

	// Walk fields.
	DurationMinutes int
}

// DelayMinutes is the leg's arrival delay in whole minutes. Walk legs have
// no delay. Negative values mean the leg runs early.
func (l *Leg) DelayMinutes() int {
	if l.Kind != LegTransit {
		return 0
	}
	return roundMinutes(l.ExpectedArrival.Sub(l.PlannedArrival))
}

// Itinerary is one complete planned journey from origin to destination.
type Itinerary struct {
	ID                string
	Legs              []Leg
	PlannedDeparture  time.Time
	PlannedArrival    time.Time
	ExpectedDeparture time.Time
	ExpectedArrival   time.Time

	// DelayMinutes = round((ExpectedArrival - PlannedArrival) / minute).
	// Early arrival yields a negative value.
	DelayMinutes int
}

// TransitLegs returns the transit legs in order.
func (it *Itinerary) TransitLegs() []*Leg {
	legs := make([]*Leg, 0, len(it.Legs))
	for i := range it.Legs {
		if it.Legs[i].Kind == LegTransit {
			legs = append(legs, &it.Legs[i])
		}
	}
	return legs
}

// Origin returns the first stop of the itinerary.
func (it *Itinerary) Origin() StopArea {
	if len(it.Legs) == 0 {
		return StopArea{}
	}
	return it.Legs[0].From
}

// Destination returns the last stop of the itinerary.
func (it *Itinerary) Destination() StopArea {
	if len(it.Legs) == 0 {
		return StopArea{}
	}
	return it.Legs[len(it.Legs)-1].To
}

// RecomputeTimes refreshes the itinerary-level planned/expected times and
// DelayMinutes from its legs. Call after mutating leg times (e.g. the
// realtime overlay).
func (it *Itinerary) RecomputeTimes() {
	var firstTransit, lastTransit *Leg
	for i := range it.Legs {
		if it.Legs[i].Kind != LegTransit {
			continue
		}
		if firstTransit == nil {
			firstTransit = &it.Legs[i]
		}
		lastTransit = &it.Legs[i]
	}
	if firstTransit == nil {
		return
	}
	it.PlannedDeparture = firstTransit.PlannedDeparture
	it.ExpectedDeparture = firstTransit.ExpectedDeparture
	it.PlannedArrival = lastTransit.PlannedArrival
	it.ExpectedArrival = lastTransit.ExpectedArrival
	it.DelayMinutes = roundMinutes(it.ExpectedArrival.Sub(it.PlannedArrival))
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
