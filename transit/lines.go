package transit

// TransportMode is the vehicle mode of a line.
type TransportMode string

const (
	ModeMetro TransportMode = "metro"
	ModeBus   TransportMode = "bus"
	ModeTrain TransportMode = "train"
	ModeTram  TransportMode = "tram"
	ModeFerry TransportMode = "ferry"
)

// Line identifies one transit line. Mode, DisplayName and Color come from
// the rule-based classification table in the itinerary package, keyed on
// the provider's stable category codes rather than free-text names.
type Line struct {
	ID          string
	Number      string
	Mode        TransportMode
	DisplayName string
	Color       string

	// NameClassified is set when the category code was unknown and the
	// mode had to be inferred from the line name. Documented fallback
	// only; treat the mode as low confidence.
	NameClassified bool
}
