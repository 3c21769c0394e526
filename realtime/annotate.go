package realtime

import (
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// Annotate fills live estimates into transit legs the synthesizer left
// without live data, matching by the leg's GTFS trip identifier. Legs the
// feed does not cover are left untouched, HasLiveData=false included.
// Itinerary-level times and DelayMinutes are recomputed when anything
// changed.
func (f *Feed) Annotate(it *transit.Itinerary) {
	changed := false
	for i := range it.Legs {
		leg := &it.Legs[i]
		if leg.Kind != transit.LegTransit || leg.HasLiveData || leg.TripID == "" {
			continue
		}

		if f.isCancelled(leg.TripID, leg.From.ID) || f.isCancelled(leg.TripID, leg.To.ID) {
			leg.Cancelled = true
			leg.HasLiveData = true
			changed = true
		}
		if epoch, ok := f.expectedDeparture(leg.TripID, leg.From.ID); ok {
			leg.ExpectedDeparture = time.Unix(epoch, 0).In(leg.PlannedDeparture.Location())
			leg.HasLiveData = true
			changed = true
		}
		if epoch, ok := f.expectedArrival(leg.TripID, leg.To.ID); ok {
			leg.ExpectedArrival = time.Unix(epoch, 0).In(leg.PlannedArrival.Location())
			leg.HasLiveData = true
			changed = true
		}
	}
	if changed {
		it.RecomputeTimes()
	}
}
