// Package iosources loads the sources.yaml configuration from disk.
package iosources

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
	"github.com/Fr4nzz/ithomiini-maps/pkg/sources"
)

type iosources struct {
	cfg *config.Config
}

// New creates a Sources backed by the sources.yaml in the user's config
// directory.
func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	sourcesConfig, err := loadSourcesConfig(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return sourcesConfig, nil
}

func loadSourcesConfig(path string) (*sources.SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg sources.SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
