package monitor

import "github.com/theoremus-urban-solutions/commute-monitor/transit"

// missedConnectionDelayMinutes is the aggregate delay beyond which a
// multi-leg itinerary's connection buffers are typically consumed.
// Exactly 10 minutes is still considered safe.
const missedConnectionDelayMinutes = 10

// Evaluation is the aggregate delay signal derived from one itinerary.
type Evaluation struct {
	// TotalDelayMinutes sums the non-negative per-leg delays of transit
	// legs. Walking legs contribute nothing; early legs count as zero.
	TotalDelayMinutes int

	// HasCancellations is true when any transit leg is flagged cancelled.
	HasCancellations bool

	// MissedConnectionRisk is true when the itinerary has more than one
	// transit leg and TotalDelayMinutes exceeds the connection-buffer
	// threshold.
	MissedConnectionRisk bool
}

// Evaluate derives the delay, cancellation and missed-connection signals
// from a synthesized itinerary.
func Evaluate(it *transit.Itinerary) Evaluation {
	var ev Evaluation
	transitLegs := 0
	for i := range it.Legs {
		leg := &it.Legs[i]
		if leg.Kind != transit.LegTransit {
			continue
		}
		transitLegs++
		if leg.Cancelled {
			ev.HasCancellations = true
		}
		if d := leg.DelayMinutes(); d > 0 {
			ev.TotalDelayMinutes += d
		}
	}
	ev.MissedConnectionRisk = transitLegs > 1 && ev.TotalDelayMinutes > missedConnectionDelayMinutes
	return ev
}
