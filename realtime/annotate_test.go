package realtime

import (
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

var base = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

// feedWith builds a Feed pre-populated as if a refresh had run.
func feedWith(t *testing.T, eta map[string]map[string]int64, cancelled map[string]bool) *Feed {
	t.Helper()
	f := NewFeed("", 0)
	if eta != nil {
		f.etaByStop = eta
	}
	if cancelled != nil {
		f.cancelledTrips = cancelled
	}
	return f
}

func plannedLeg(t *testing.T, tripID string) transit.Leg {
	t.Helper()
	dep := base
	arr := base.Add(20 * time.Minute)
	return transit.Leg{
		Kind:              transit.LegTransit,
		From:              transit.StopArea{ID: "A"},
		To:                transit.StopArea{ID: "B"},
		Line:              &transit.Line{ID: "L1", Mode: transit.ModeTrain},
		TripID:            tripID,
		PlannedDeparture:  dep,
		PlannedArrival:    arr,
		ExpectedDeparture: dep,
		ExpectedArrival:   arr,
	}
}

func TestAnnotate_FillsDelayForKnownTrip(t *testing.T) {
	liveArr := base.Add(28 * time.Minute) // 8 minutes late
	f := feedWith(t, map[string]map[string]int64{
		"trip-1": {"B": liveArr.Unix()},
	}, nil)

	it := &transit.Itinerary{Legs: []transit.Leg{plannedLeg(t, "trip-1")}}
	it.RecomputeTimes()
	f.Annotate(it)

	leg := it.Legs[0]
	if !leg.HasLiveData {
		t.Error("annotated leg should have HasLiveData=true")
	}
	if !leg.ExpectedArrival.Equal(liveArr) {
		t.Errorf("ExpectedArrival = %v, want %v", leg.ExpectedArrival, liveArr)
	}
	if it.DelayMinutes != 8 {
		t.Errorf("DelayMinutes = %d, want 8 (itinerary recomputed)", it.DelayMinutes)
	}
}

func TestAnnotate_UnknownTripUntouched(t *testing.T) {
	f := feedWith(t, map[string]map[string]int64{
		"other-trip": {"B": base.Add(30 * time.Minute).Unix()},
	}, nil)

	it := &transit.Itinerary{Legs: []transit.Leg{plannedLeg(t, "trip-1")}}
	it.RecomputeTimes()
	f.Annotate(it)

	if it.Legs[0].HasLiveData {
		t.Error("a trip the feed does not cover must stay HasLiveData=false")
	}
	if it.DelayMinutes != 0 {
		t.Errorf("DelayMinutes = %d, want 0", it.DelayMinutes)
	}
}

func TestAnnotate_DoesNotOverrideProviderLiveData(t *testing.T) {
	providerArr := base.Add(25 * time.Minute)
	f := feedWith(t, map[string]map[string]int64{
		"trip-1": {"B": base.Add(40 * time.Minute).Unix()},
	}, nil)

	leg := plannedLeg(t, "trip-1")
	leg.ExpectedArrival = providerArr
	leg.HasLiveData = true
	it := &transit.Itinerary{Legs: []transit.Leg{leg}}
	it.RecomputeTimes()
	f.Annotate(it)

	if !it.Legs[0].ExpectedArrival.Equal(providerArr) {
		t.Error("the trip-search provider's live estimate must win over the overlay")
	}
}

func TestAnnotate_CancelledTrip(t *testing.T) {
	f := feedWith(t, nil, map[string]bool{"trip-1": true})

	it := &transit.Itinerary{Legs: []transit.Leg{plannedLeg(t, "trip-1")}}
	it.RecomputeTimes()
	f.Annotate(it)

	if !it.Legs[0].Cancelled {
		t.Error("trip-level cancellation should mark the leg cancelled")
	}
}

func TestAnnotate_EmptyFeedIsNoop(t *testing.T) {
	f := NewFeed("", 0)

	it := &transit.Itinerary{Legs: []transit.Leg{plannedLeg(t, "trip-1")}}
	it.RecomputeTimes()
	before := it.Legs[0]
	f.Annotate(it)

	if it.Legs[0] != before {
		t.Error("empty feed must leave the itinerary untouched")
	}
}
