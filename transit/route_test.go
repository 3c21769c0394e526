package transit

import (
	"testing"
	"time"
)

func validRoute(t *testing.T) CommuteRoute {
	t.Helper()
	return CommuteRoute{
		ID:                         "route-1",
		UserID:                     "user-1",
		OriginStopID:               "9001",
		DestinationStopID:          "9202",
		PreferredTime:              "08:00",
		TimeMode:                   TimeModeDepart,
		ActiveWeekdays:             [7]bool{false, true, true, true, true, true, false},
		NotificationsEnabled:       true,
		AlertLeadMinutes:           15,
		DelayAlertThresholdMinutes: 5,
	}
}

func TestCommuteRoute_Validate_OK(t *testing.T) {
	r := validRoute(t)
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestCommuteRoute_Validate_FailsFast(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CommuteRoute)
	}{
		{"missing user", func(r *CommuteRoute) { r.UserID = "" }},
		{"same origin and destination", func(r *CommuteRoute) { r.DestinationStopID = r.OriginStopID }},
		{"bad clock", func(r *CommuteRoute) { r.PreferredTime = "25:99" }},
		{"bad time mode", func(r *CommuteRoute) { r.TimeMode = "sometime" }},
		{"zero lead", func(r *CommuteRoute) { r.AlertLeadMinutes = 0 }},
		{"no weekdays", func(r *CommuteRoute) { r.ActiveWeekdays = [7]bool{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRoute(t)
			tc.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestCommuteRoute_PreferredTimeOn(t *testing.T) {
	r := validRoute(t)
	ref := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC) // a Monday afternoon

	got := r.PreferredTimeOn(ref)
	want := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("PreferredTimeOn = %v, want %v", got, want)
	}
}

func TestCommuteRoute_ActiveOn(t *testing.T) {
	r := validRoute(t)
	if r.ActiveOn(time.Sunday) {
		t.Error("route should not be active on Sunday")
	}
	if !r.ActiveOn(time.Wednesday) {
		t.Error("route should be active on Wednesday")
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:45")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if h != 7 || m != 45 {
		t.Errorf("ParseClock = %d:%d, want 7:45", h, m)
	}
	if _, _, err := ParseClock("7:45pm"); err == nil {
		t.Error("ParseClock accepted a non-24h string")
	}
}
