package config

// ProviderConfig configures the upstream trip-search API client.
type ProviderConfig struct {
	BaseURL           string  `yaml:"baseURL" validate:"required,url"`
	TimeoutMS         int     `yaml:"timeoutMS" validate:"gte=0"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond" validate:"gte=0"`
}

// RealtimeConfig configures the optional GTFS-RT TripUpdates overlay.
type RealtimeConfig struct {
	TripUpdatesURL string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// MonitorConfig tunes the monitoring loop.
type MonitorConfig struct {
	CallTimeoutMS   int   `yaml:"callTimeoutMS" validate:"gte=0"`
	MaxConcurrent   int64 `yaml:"maxConcurrent" validate:"gte=0"`
	DebounceMinutes int   `yaml:"debounceMinutes" validate:"gte=0"`
}

// StationConfig is one entry of the curated fallback station set served
// when the upstream station search is down.
type StationConfig struct {
	ID       string  `yaml:"id" validate:"required"`
	Name     string  `yaml:"name" validate:"required"`
	Lat      float64 `yaml:"lat"`
	Lon      float64 `yaml:"lon"`
	Category string  `yaml:"category" validate:"omitempty,oneof=rail metro busTerminal other"`
}

// RouteConfig is one saved commute route as declared in the config file.
// The CLI's file-backed route store converts these to the canonical shape
// and validates them fail-fast at load.
type RouteConfig struct {
	ID                         string   `yaml:"id"`
	UserID                     string   `yaml:"userId"`
	OriginStopID               string   `yaml:"originStopId"`
	DestinationStopID          string   `yaml:"destinationStopId"`
	PreferredTime              string   `yaml:"preferredTime"`
	TimeMode                   string   `yaml:"timeMode"`
	Weekdays                   []string `yaml:"weekdays"`
	NotificationsEnabled       bool     `yaml:"notificationsEnabled"`
	AlertLeadMinutes           int      `yaml:"alertLeadMinutes"`
	DelayAlertThresholdMinutes int      `yaml:"delayAlertThresholdMinutes"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Provider         ProviderConfig  `yaml:"provider" validate:"required"`
	Realtime         RealtimeConfig  `yaml:"realtime"`
	Monitor          MonitorConfig   `yaml:"monitor"`
	FallbackStations []StationConfig `yaml:"fallbackStations"`
	Routes           []RouteConfig   `yaml:"routes"`
}
