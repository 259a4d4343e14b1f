package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptFetchGBIFSpeciesLimit sets how many species to enrich via the GBIF
// occurrence-search API. Zero disables enrichment.
func OptFetchGBIFSpeciesLimit(i int) Option {
	return func(c *Config) {
		if isValidCount("GBIF Species Limit", i) {
			c.Fetch.GBIFSpeciesLimit = i
		}
	}
}

// OptFetchGBIFRecordsPerSpecies sets the occurrence page size per species.
func OptFetchGBIFRecordsPerSpecies(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Records Per Species", i) {
			c.Fetch.GBIFRecordsPerSpecies = i
		}
	}
}

// OptFetchCacheDays sets the age threshold for cached GBIF responses.
func OptFetchCacheDays(i int) Option {
	return func(c *Config) {
		if isValidCount("Cache Days", i) {
			c.Fetch.CacheDays = i
		}
	}
}

// OptFetchTimeoutSec sets the per-request HTTP timeout in seconds.
func OptFetchTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Timeout", i) {
			c.Fetch.TimeoutSec = i
		}
	}
}

// OptOutputDir sets the directory for the reconciled map data.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Output.Dir = s
		}
	}
}

// OptOutputPretty toggles indented JSON output.
func OptOutputPretty(b bool) Option {
	return func(c *Config) {
		c.Output.Pretty = b
	}
}

// OptLogLevel sets the minimum level to log.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log encoding. Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs go.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory. Runtime-only field, set once by the
// CLI at startup.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
