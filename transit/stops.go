package transit

// StopCategory classifies a stop area by the heaviest service it hosts.
// The ordering matters: search ranking prefers Rail over Metro over
// BusTerminal so that an ambiguous name ("Central") resolves toward the
// long-distance/commuter rail hub rather than the metro interchange that
// shares its name.
type StopCategory int

const (
	CategoryOther StopCategory = iota
	CategoryBusTerminal
	CategoryMetro
	CategoryRail
)

func (c StopCategory) String() string {
	switch c {
	case CategoryRail:
		return "rail"
	case CategoryMetro:
		return "metro"
	case CategoryBusTerminal:
		return "busTerminal"
	default:
		return "other"
	}
}

// StopArea is immutable reference data for one physical stop complex.
type StopArea struct {
	ID       string
	Name     string
	Lat      float64
	Lon      float64
	Category StopCategory

	// LowConfidence marks results sourced from the curated fallback set
	// during an upstream outage. Callers must not treat such a stop as
	// authoritative.
	LowConfidence bool
}
