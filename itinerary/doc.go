// Package itinerary normalizes raw upstream trips into the canonical
// transit.Itinerary model.
//
// Synthesis is where the upstream's inconsistencies are contained: legs
// are classified by the provider's explicit discriminator, lines by a
// static table keyed on stable category codes, and missing live estimates
// fall back to planned times with HasLiveData=false so that absent data is
// never mistaken for "on time". Trips missing required fields fail with
// transit.ErrMalformedUpstreamData and are discarded by callers.
package itinerary
