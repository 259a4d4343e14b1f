package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains valid.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml; excludes
// runtime-only fields (HomeDir). Used for round-tripping
// config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if c.Fetch.GBIFSpeciesLimit >= 0 {
		res = append(res, OptFetchGBIFSpeciesLimit(c.Fetch.GBIFSpeciesLimit))
	}
	if c.Fetch.GBIFRecordsPerSpecies > 0 {
		res = append(res, OptFetchGBIFRecordsPerSpecies(c.Fetch.GBIFRecordsPerSpecies))
	}
	if c.Fetch.CacheDays >= 0 {
		res = append(res, OptFetchCacheDays(c.Fetch.CacheDays))
	}
	if c.Fetch.TimeoutSec > 0 {
		res = append(res, OptFetchTimeoutSec(c.Fetch.TimeoutSec))
	}

	if c.Output.Dir != "" {
		res = append(res, OptOutputDir(c.Output.Dir))
	}
	res = append(res, OptOutputPretty(c.Output.Pretty))

	if c.Log.Format != "" {
		res = append(res, OptLogFormat(c.Log.Format))
	}
	if c.Log.Level != "" {
		res = append(res, OptLogLevel(c.Log.Level))
	}
	if c.Log.Destination != "" {
		res = append(res, OptLogDestination(c.Log.Destination))
	}

	if c.JobsNumber > 0 {
		res = append(res, OptJobsNumber(c.JobsNumber))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

// isValidCount allows zero: several knobs use 0 to mean "disabled".
func isValidCount(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
