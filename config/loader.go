package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/commute-monitor/transit"
)

// LoadAppConfig loads and validates the application configuration. With an
// empty path it tries config.yml in the working directory.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}

	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Provider.TimeoutMS == 0 {
		cfg.Provider.TimeoutMS = 30000
	}
	if cfg.Provider.RequestsPerSecond == 0 {
		cfg.Provider.RequestsPerSecond = 2
	}
	if cfg.Realtime.TimeoutMS == 0 {
		cfg.Realtime.TimeoutMS = 15000
	}
	if cfg.Monitor.CallTimeoutMS == 0 {
		cfg.Monitor.CallTimeoutMS = 15000
	}
	if cfg.Monitor.MaxConcurrent == 0 {
		cfg.Monitor.MaxConcurrent = 4
	}
	if cfg.Monitor.DebounceMinutes == 0 {
		cfg.Monitor.DebounceMinutes = 5
	}
}

// ProviderTimeout returns the provider HTTP timeout as a duration.
func (c *AppConfig) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutMS) * time.Millisecond
}

// CallTimeout returns the per-upstream-call timeout of the monitor loop.
func (c *AppConfig) CallTimeout() time.Duration {
	return time.Duration(c.Monitor.CallTimeoutMS) * time.Millisecond
}

// RealtimeTimeout returns the GTFS-RT fetch timeout.
func (c *AppConfig) RealtimeTimeout() time.Duration {
	return time.Duration(c.Realtime.TimeoutMS) * time.Millisecond
}

// FallbackStopAreas converts the configured fallback stations to the
// canonical model.
func (c *AppConfig) FallbackStopAreas() []transit.StopArea {
	stops := make([]transit.StopArea, 0, len(c.FallbackStations))
	for _, s := range c.FallbackStations {
		stops = append(stops, transit.StopArea{
			ID:       s.ID,
			Name:     s.Name,
			Lat:      s.Lat,
			Lon:      s.Lon,
			Category: categoryFromName(s.Category),
		})
	}
	return stops
}

func categoryFromName(name string) transit.StopCategory {
	switch name {
	case "rail":
		return transit.CategoryRail
	case "metro":
		return transit.CategoryMetro
	case "busTerminal":
		return transit.CategoryBusTerminal
	default:
		return transit.CategoryOther
	}
}

// CommuteRoutes converts and validates the configured routes. A malformed
// route fails the whole load: configuration errors surface here, before
// the scheduler ever runs.
func (c *AppConfig) CommuteRoutes() ([]transit.CommuteRoute, error) {
	routes := make([]transit.CommuteRoute, 0, len(c.Routes))
	for _, rc := range c.Routes {
		route, err := rc.ToCommuteRoute()
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// ToCommuteRoute converts a config route to the canonical shape and
// validates it.
func (rc RouteConfig) ToCommuteRoute() (transit.CommuteRoute, error) {
	route := transit.CommuteRoute{
		ID:                         rc.ID,
		UserID:                     rc.UserID,
		OriginStopID:               rc.OriginStopID,
		DestinationStopID:          rc.DestinationStopID,
		PreferredTime:              rc.PreferredTime,
		TimeMode:                   transit.TimeMode(rc.TimeMode),
		NotificationsEnabled:       rc.NotificationsEnabled,
		AlertLeadMinutes:           rc.AlertLeadMinutes,
		DelayAlertThresholdMinutes: rc.DelayAlertThresholdMinutes,
	}
	if route.TimeMode == "" {
		route.TimeMode = transit.TimeModeDepart
	}
	for _, name := range rc.Weekdays {
		day, ok := weekdayNames[name]
		if !ok {
			return transit.CommuteRoute{}, fmt.Errorf("route %s: invalid weekday %q", rc.ID, name)
		}
		route.ActiveWeekdays[int(day)] = true
	}
	if err := route.Validate(); err != nil {
		return transit.CommuteRoute{}, err
	}
	return route, nil
}
