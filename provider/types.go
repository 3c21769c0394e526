package provider

import "time"

// Leg type discriminator values. Classification of a raw leg is strictly
// by this field, never by sniffing the line name.
const (
	LegTypeWalk    = "walk"
	LegTypeTransit = "transit"
)

// RawStop is a stop reference as the upstream API reports it.
type RawStop struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	CategoryCode int     `json:"categoryCode"`
}

// RawLine is line metadata as the upstream API reports it. CategoryCode is
// the stable product class code the classification table is keyed on.
type RawLine struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	Name         string `json:"name"`
	CategoryCode int    `json:"categoryCode"`
	Color        string `json:"color,omitempty"`
}

// RawLeg is one segment of a raw trip. Expected times are nil when the
// upstream has no live estimate for the leg; the synthesizer then falls
// back to planned times with HasLiveData=false.
type RawLeg struct {
	Type        string  `json:"type"`
	Origin      RawStop `json:"origin"`
	Destination RawStop `json:"destination"`

	PlannedDeparture  time.Time  `json:"plannedDeparture"`
	PlannedArrival    time.Time  `json:"plannedArrival"`
	ExpectedDeparture *time.Time `json:"expectedDeparture,omitempty"`
	ExpectedArrival   *time.Time `json:"expectedArrival,omitempty"`

	Line      *RawLine `json:"line,omitempty"`
	TripID    string   `json:"tripId,omitempty"`
	Platform  string   `json:"platform,omitempty"`
	Cancelled bool     `json:"cancelled,omitempty"`

	// Walk legs only.
	WalkSeconds int `json:"walkSeconds,omitempty"`

	// SameComplexTransfer marks a leg whose boarding stop differs from the
	// previous leg's alighting stop but lies within the same physical
	// complex. The synthesizer inserts a synthetic walk leg for it.
	SameComplexTransfer bool `json:"sameComplexTransfer,omitempty"`
	TransferWalkSeconds int  `json:"transferWalkSeconds,omitempty"`
}

// RawTrip is one candidate journey from the upstream trip search.
type RawTrip struct {
	ID   string   `json:"id"`
	Legs []RawLeg `json:"legs"`
}

// rawLocation is the upstream station-search result shape.
type rawLocation struct {
	Type         string  `json:"type"`
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	CategoryCode int     `json:"categoryCode"`
}

type locationsResponse struct {
	Locations []rawLocation `json:"locations"`
}

type journeysResponse struct {
	Journeys []RawTrip `json:"journeys"`
}
