// Package transit defines the canonical commute-monitoring domain model.
//
// Everything downstream of the upstream provider speaks these types: stop
// areas, lines, itineraries composed of ordered legs, the user's saved
// commute routes, and the alert events the monitoring loop emits. The
// package holds no I/O; synthesis from raw provider data lives in the
// itinerary package and live-data annotation in the realtime package.
//
// # Time conventions
//
// All timestamps are time.Time values in the location the provider
// reported; durations and delays are whole minutes. An itinerary's
// DelayMinutes may be negative (early arrival) and is never clamped.
package transit
