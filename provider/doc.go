// Package provider is the boundary to the upstream transit data source.
//
// It defines the raw DTO shapes the trip-search API returns, the
// ItineraryProvider and StationProvider interfaces the core consumes, and
// an HTTP implementation with retry, rate limiting and per-call timeouts.
// Raw trips are normalized into the canonical transit model by the
// itinerary package; nothing outside that package should read raw DTOs.
package provider
