// Package realtime overlays GTFS-Realtime TripUpdates onto synthesized
// itineraries.
//
// The trip-search upstream does not always carry live estimates; when a
// region publishes a GTFS-RT feed, this package fetches and indexes it and
// fills in expected times and cancellation flags for transit legs that
// were synthesized without live data. Legs the feed knows nothing about
// are left untouched, so planned-equals-expected fallbacks keep their
// HasLiveData=false bookkeeping.
package realtime
