// Package iofs prepares the application's directories and seeds default
// configuration files on first run.
package iofs

import (
	_ "embed"
	"os"

	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed sources.yaml
var SourcesYAML string

// EnsureDirs creates the config, cache and log directories if needed.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded default config.yaml to the config
// directory unless one already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureSourcesFile writes the embedded default sources.yaml to the
// config directory unless one already exists.
func EnsureSourcesFile(homeDir string) error {
	sourcesPath := config.SourcesFilePath(homeDir)

	if _, err := os.Stat(sourcesPath); err == nil {
		return nil
	}

	if err := os.WriteFile(sourcesPath, []byte(SourcesYAML), 0644); err != nil {
		return CopyFileError(sourcesPath, err)
	}

	return nil
}
