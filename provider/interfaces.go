package provider

import (
	"context"
	"time"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// ItineraryProvider searches the upstream transit data source for candidate
// trips. Implementations must honor ctx cancellation; every call made by
// the monitoring loop carries a timeout.
//
// SearchTrips returns transit.ErrNoItineraryFound when the search completed
// with no usable trips and transit.ErrUpstreamUnavailable on transport or
// upstream failures.
type ItineraryProvider interface {
	SearchTrips(ctx context.Context, originStopID, destStopID string, at time.Time, mode transit.TimeMode) ([]RawTrip, error)
}

// StationProvider performs free-text station search upstream.
type StationProvider interface {
	Search(ctx context.Context, query string) ([]transit.StopArea, error)
}
