package transit

import "errors"

// Sentinel errors shared across the provider boundary and the monitoring
// loop. Callers wrap these with fmt.Errorf("...: %w", err) and match with
// errors.Is.
var (
	// ErrNoItineraryFound means the upstream search completed but produced
	// no usable trips. The scheduler treats this as "nothing monitorable
	// this tick"; it must never clear a previously observed delay.
	ErrNoItineraryFound = errors.New("no itinerary found")

	// ErrUpstreamUnavailable means the upstream provider could not be
	// reached or answered with a transient failure.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

	// ErrMalformedUpstreamData means a raw trip was missing fields required
	// for synthesis. The offending trip is discarded, never propagated.
	ErrMalformedUpstreamData = errors.New("malformed upstream data")

	// ErrStopNotFound means a stop ID referenced by a saved route does not
	// exist upstream.
	ErrStopNotFound = errors.New("stop not found")
)
