// Package stations resolves free-text queries to canonical stop areas.
//
// Results are ranked Rail > Metro > BusTerminal > others, then
// alphabetically, so an ambiguous name prefers the commuter-rail hub over
// a metro stop sharing it. Resolved queries are cached for a bounded TTL
// to avoid flooding the upstream provider, and an upstream outage returns
// a curated low-confidence fallback set instead of an error so downstream
// scheduling never stalls on a transient data-source problem.
package stations
