package transit

import (
	"time"

	"github.com/google/uuid"
)

// AlertKind is the category of a monitoring alert.
type AlertKind string

const (
	AlertDepartureReminder    AlertKind = "departureReminder"
	AlertDelayDetected        AlertKind = "delayDetected"
	AlertDelayResolved        AlertKind = "delayResolved"
	AlertAlternativeAvailable AlertKind = "alternativeAvailable"
)

// Severity grades an alert for the delivery layer.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AlertEvent is the structured event handed to the notification
// dispatcher. Delivery and persistence belong to the surrounding product;
// ID and Timestamp let that layer deduplicate.
type AlertEvent struct {
	ID        string    `json:"id"`
	Kind      AlertKind `json:"kind"`
	RouteID   string    `json:"routeId"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAlertEvent builds an AlertEvent with a fresh ID.
func NewAlertEvent(kind AlertKind, route *CommuteRoute, title, message string, severity Severity, at time.Time) AlertEvent {
	return AlertEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		RouteID:   route.ID,
		UserID:    route.UserID,
		Title:     title,
		Message:   message,
		Severity:  severity,
		Timestamp: at,
	}
}
