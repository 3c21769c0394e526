package itinerary

import (
	"strings"

	"github.com/theoremus-urban-solutions/commute-monitor/provider"
	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// lineClass is one row of the classification table.
type lineClass struct {
	mode        transit.TransportMode
	displayName string
	color       string
}

// classTable maps the upstream's stable product category codes to line
// metadata. Classification is data-driven on these codes, never substring
// matching on free-text names, which would misclassify e.g. a rail line
// whose name contains a metro-like token.
var classTable = map[int]lineClass{
	10: {transit.ModeTrain, "Commuter rail", "#ec619f"},
	11: {transit.ModeTrain, "Regional rail", "#b76014"},
	20: {transit.ModeMetro, "Metro", "#168541"},
	30: {transit.ModeTram, "Tram", "#985f37"},
	31: {transit.ModeTram, "Light rail", "#b65f1f"},
	40: {transit.ModeBus, "Bus", "#d61720"},
	41: {transit.ModeBus, "Express bus", "#0089ca"},
	50: {transit.ModeFerry, "Ferry", "#0a64a0"},
}

// ClassifyLine builds a transit.Line from raw line metadata. Unknown
// category codes fall back to name-based inference; the result is then
// flagged NameClassified so callers can treat the mode as low confidence.
func ClassifyLine(raw *provider.RawLine) transit.Line {
	line := transit.Line{
		ID:     raw.ID,
		Number: raw.Number,
		Color:  raw.Color,
	}
	if class, ok := classTable[raw.CategoryCode]; ok {
		line.Mode = class.mode
		line.DisplayName = class.displayName
		if line.Color == "" {
			line.Color = class.color
		}
		return line
	}

	line.Mode = modeFromName(raw.Name)
	line.DisplayName = raw.Name
	line.NameClassified = true
	return line
}

// modeFromName is the documented fallback for unknown category codes.
func modeFromName(name string) transit.TransportMode {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "metro"), strings.Contains(n, "tunnelbana"):
		return transit.ModeMetro
	case strings.Contains(n, "tram"), strings.Contains(n, "spårväg"):
		return transit.ModeTram
	case strings.Contains(n, "ferry"), strings.Contains(n, "båt"):
		return transit.ModeFerry
	case strings.Contains(n, "tåg"), strings.Contains(n, "train"), strings.Contains(n, "rail"):
		return transit.ModeTrain
	default:
		return transit.ModeBus
	}
}
