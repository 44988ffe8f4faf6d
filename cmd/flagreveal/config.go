package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose     = "verbose"
	FlagConfig      = "config"
	FlagLogDir      = "log-dir"
	FlagEventsFile  = "events-file"
	FlagMetricsFile = "metrics-file"

	// Run command flags
	FlagEndpoint       = "endpoint"
	FlagInterval       = "interval"
	FlagTimeout        = "timeout"
	FlagTUI            = "tui"
	FlagPlain          = "plain"
	FlagExitOnComplete = "exit-on-complete"

	// Events command flags
	FlagCount = "count"
	FlagRun   = "run"
)
