package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

const sampleConfig = `
provider:
  baseURL: https://transit.example.org/api/v1
routes:
  - id: route-1
    userId: user-1
    originStopId: "9001"
    destinationStopId: "9202"
    preferredTime: "08:00"
    weekdays: [mon, tue, wed, thu, fri]
    notificationsEnabled: true
    alertLeadMinutes: 15
    delayAlertThresholdMinutes: 5
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	cfg, err := LoadAppConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}

	if cfg.Provider.TimeoutMS != 30000 {
		t.Errorf("provider timeout default = %d, want 30000", cfg.Provider.TimeoutMS)
	}
	if cfg.Monitor.MaxConcurrent != 4 {
		t.Errorf("maxConcurrent default = %d, want 4", cfg.Monitor.MaxConcurrent)
	}
	if cfg.Monitor.DebounceMinutes != 5 {
		t.Errorf("debounce default = %d, want 5", cfg.Monitor.DebounceMinutes)
	}
}

func TestLoadAppConfig_InvalidProviderURL(t *testing.T) {
	_, err := LoadAppConfig(writeConfig(t, "provider:\n  baseURL: not-a-url\n"))
	if err == nil {
		t.Fatal("invalid baseURL should fail validation")
	}
}

func TestCommuteRoutes_Conversion(t *testing.T) {
	cfg, err := LoadAppConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}

	routes, err := cfg.CommuteRoutes()
	if err != nil {
		t.Fatalf("CommuteRoutes: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}

	r := routes[0]
	if r.TimeMode != transit.TimeModeDepart {
		t.Errorf("TimeMode = %s, want depart (default)", r.TimeMode)
	}
	if r.ActiveOn(0) || !r.ActiveOn(1) || r.ActiveOn(6) {
		t.Error("weekday mapping wrong: want Mon-Fri active, Sun/Sat inactive")
	}
}

func TestCommuteRoutes_FailFast(t *testing.T) {
	cases := []struct {
		name  string
		route RouteConfig
	}{
		{"invalid weekday", RouteConfig{
			ID: "r", UserID: "u", OriginStopID: "1", DestinationStopID: "2",
			PreferredTime: "08:00", Weekdays: []string{"monday"}, AlertLeadMinutes: 15,
		}},
		{"bad clock", RouteConfig{
			ID: "r", UserID: "u", OriginStopID: "1", DestinationStopID: "2",
			PreferredTime: "8 o'clock", Weekdays: []string{"mon"}, AlertLeadMinutes: 15,
		}},
		{"missing user", RouteConfig{
			ID: "r", OriginStopID: "1", DestinationStopID: "2",
			PreferredTime: "08:00", Weekdays: []string{"mon"}, AlertLeadMinutes: 15,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.route.ToCommuteRoute(); err == nil {
				t.Error("ToCommuteRoute() = nil, want error (config errors fail before the scheduler runs)")
			}
		})
	}
}

func TestFallbackStopAreas(t *testing.T) {
	cfg := AppConfig{FallbackStations: []StationConfig{
		{ID: "9001", Name: "Central Station", Category: "rail"},
		{ID: "9009", Name: "Harbor", Category: "ferryDock"},
	}}

	stops := cfg.FallbackStopAreas()
	if stops[0].Category != transit.CategoryRail {
		t.Errorf("category = %v, want rail", stops[0].Category)
	}
	if stops[1].Category != transit.CategoryOther {
		t.Errorf("unknown category = %v, want other", stops[1].Category)
	}
}
