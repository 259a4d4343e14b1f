// Package config provides configuration management for ithomaps.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults. Environment variables use the ITHOMAPS_ prefix with
// underscores for nesting, e.g. ITHOMAPS_FETCH_GBIF_SPECIES_LIMIT=10.
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to modify
//     Config
//   - Invalid options are rejected with gn.Warn() - config remains in a
//     valid state
package config

import (
	"runtime"
)

// Config represents the complete ithomaps configuration.
type Config struct {
	// Fetch contains settings for source acquisition.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	// Output contains settings for the map-data output.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations. Defaults to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. It is set by the CLI during init; there is no default.
	HomeDir string
}

// FetchConfig contains source-acquisition settings.
type FetchConfig struct {
	// GBIFSpeciesLimit caps how many species are enriched through the
	// GBIF occurrence-search API. Zero disables enrichment.
	GBIFSpeciesLimit int `mapstructure:"gbif_species_limit" yaml:"gbif_species_limit"`

	// GBIFRecordsPerSpecies caps occurrences fetched per species.
	GBIFRecordsPerSpecies int `mapstructure:"gbif_records_per_species" yaml:"gbif_records_per_species"`

	// CacheDays is the age threshold for cached GBIF responses.
	// Cached taxon keys older than this are refreshed.
	CacheDays int `mapstructure:"cache_days" yaml:"cache_days"`

	// TimeoutSec bounds a single HTTP request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// OutputConfig contains settings for writing the reconciled records.
type OutputConfig struct {
	// Dir is the directory for map_points.json.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Pretty toggles indented JSON output.
	Pretty bool `mapstructure:"pretty" yaml:"pretty"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Level is the minimum level to log: debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is the log encoding: json or text.
	Format string `mapstructure:"format" yaml:"format"`

	// Destination is where logs go: file, stdout or stderr.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with default values. The result is always valid.
func New() *Config {
	return &Config{
		Fetch: FetchConfig{
			GBIFSpeciesLimit:      5,
			GBIFRecordsPerSpecies: 50,
			CacheDays:             30,
			TimeoutSec:            30,
		},
		Output: OutputConfig{
			Dir: "public/data",
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}
}
