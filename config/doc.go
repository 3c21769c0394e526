// Package config loads and validates the application configuration from
// a YAML file. Struct tags drive validation; defaults are applied after a
// successful parse. Saved commute routes declared in the file are
// converted and validated here so configuration errors fail fast, before
// the monitoring loop starts.
package config
