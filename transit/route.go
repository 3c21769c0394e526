package transit

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimeMode says whether PreferredTime is the wanted departure or arrival.
type TimeMode string

const (
	TimeModeDepart TimeMode = "depart"
	TimeModeArrive TimeMode = "arrive"
)

// CommuteRoute is a user's saved recurring commute. It is owned by the
// surrounding product's CRUD layer and read-only from the core's
// perspective; the scheduler takes a point-in-time snapshot each tick.
type CommuteRoute struct {
	ID                string   `json:"id" validate:"required"`
	UserID            string   `json:"userId" validate:"required"`
	OriginStopID      string   `json:"originStopId" validate:"required"`
	DestinationStopID string   `json:"destinationStopId" validate:"required,nefield=OriginStopID"`
	PreferredTime     string   `json:"preferredTime" validate:"required"`
	TimeMode          TimeMode `json:"timeMode" validate:"required,oneof=depart arrive"`

	// ActiveWeekdays is indexed by time.Weekday (Sunday = 0).
	ActiveWeekdays [7]bool `json:"activeWeekdays"`

	NotificationsEnabled       bool `json:"notificationsEnabled"`
	AlertLeadMinutes           int  `json:"alertLeadMinutes" validate:"gte=1,lte=180"`
	DelayAlertThresholdMinutes int  `json:"delayAlertThresholdMinutes" validate:"gte=0,lte=120"`
}

var routeValidator = validator.New()

// Validate checks the route for programmer/config errors. Routes are
// validated at load time, before entering the scheduler, so malformed
// configuration fails fast instead of surfacing inside the hot loop.
func (r *CommuteRoute) Validate() error {
	if err := routeValidator.Struct(r); err != nil {
		return fmt.Errorf("route %s: %w", r.ID, err)
	}
	if _, _, err := ParseClock(r.PreferredTime); err != nil {
		return fmt.Errorf("route %s: %w", r.ID, err)
	}
	active := false
	for _, day := range r.ActiveWeekdays {
		if day {
			active = true
			break
		}
	}
	if !active {
		return fmt.Errorf("route %s: no active weekdays", r.ID)
	}
	return nil
}

// ActiveOn reports whether the route runs on the given weekday.
func (r *CommuteRoute) ActiveOn(day time.Weekday) bool {
	return r.ActiveWeekdays[int(day)]
}

// PreferredTimeOn anchors the route's "HH:MM" preferred time to the
// calendar day of ref, in ref's location.
func (r *CommuteRoute) PreferredTimeOn(ref time.Time) time.Time {
	hour, minute, err := ParseClock(r.PreferredTime)
	if err != nil {
		return time.Time{}
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())
}

// ParseClock parses a strict 24h "HH:MM" string.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid HH:MM time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
