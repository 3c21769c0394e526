package monitor

import (
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

var evalBase = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

// tleg builds a transit leg with the given arrival delay in minutes.
func tleg(t *testing.T, delayMin int, cancelled bool) transit.Leg {
	t.Helper()
	dep := evalBase
	arr := evalBase.Add(20 * time.Minute)
	return transit.Leg{
		Kind:              transit.LegTransit,
		From:              transit.StopArea{ID: "A"},
		To:                transit.StopArea{ID: "B"},
		Line:              &transit.Line{ID: "L1", Mode: transit.ModeTrain},
		PlannedDeparture:  dep,
		PlannedArrival:    arr,
		ExpectedDeparture: dep,
		ExpectedArrival:   arr.Add(time.Duration(delayMin) * time.Minute),
		Cancelled:         cancelled,
		HasLiveData:       true,
	}
}

func itin(t *testing.T, legs ...transit.Leg) *transit.Itinerary {
	t.Helper()
	it := &transit.Itinerary{Legs: legs}
	it.RecomputeTimes()
	return it
}

func TestEvaluate_SumsNonNegativeTransitDelays(t *testing.T) {
	it := itin(t, tleg(t, 8, false), tleg(t, -3, false), transit.Leg{Kind: transit.LegWalk, DurationMinutes: 5})

	ev := Evaluate(it)
	if ev.TotalDelayMinutes != 8 {
		t.Errorf("TotalDelayMinutes = %d, want 8 (early legs and walks contribute nothing)", ev.TotalDelayMinutes)
	}
}

func TestEvaluate_Cancellations(t *testing.T) {
	it := itin(t, tleg(t, 0, true))

	ev := Evaluate(it)
	if !ev.HasCancellations {
		t.Error("HasCancellations should be true")
	}
}

func TestEvaluate_MissedConnectionBoundary(t *testing.T) {
	cases := []struct {
		name     string
		delays   []int
		wantRisk bool
	}{
		{"exactly 10 is safe", []int{5, 5}, false},
		{"11 is at risk", []int{5, 6}, true},
		{"single leg never at risk", []int{25}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			legs := make([]transit.Leg, 0, len(tc.delays))
			for _, d := range tc.delays {
				legs = append(legs, tleg(t, d, false))
			}
			ev := Evaluate(itin(t, legs...))
			if ev.MissedConnectionRisk != tc.wantRisk {
				t.Errorf("MissedConnectionRisk = %v, want %v", ev.MissedConnectionRisk, tc.wantRisk)
			}
		})
	}
}

func TestEvaluate_TwoLegTwelveMinuteDelay(t *testing.T) {
	// 12-minute delay on the first of two legs: connection at risk, no
	// cancellation.
	it := itin(t, tleg(t, 12, false), tleg(t, 0, false))

	ev := Evaluate(it)
	if !ev.MissedConnectionRisk {
		t.Error("MissedConnectionRisk should be true")
	}
	if ev.HasCancellations {
		t.Error("HasCancellations should be false")
	}
	if ev.TotalDelayMinutes != 12 {
		t.Errorf("TotalDelayMinutes = %d, want 12", ev.TotalDelayMinutes)
	}
}
