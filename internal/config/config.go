package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml"
)

const ManifestFileName = "voltlink.toml"

// tomlManifest represents the link manifest as it is encoded in TOML
type tomlManifest struct {
	Name      string `toml:"name"`
	Input     string `toml:"input"`
	CachePath string `toml:"cache-path"`
	Workers   int    `toml:"workers"`
	Optimize  bool   `toml:"optimize"`
	LogLevel  string `toml:"log-level"`
}

// A Manifest is the validated link configuration for one module.
type Manifest struct {
	// Module name, used in the emitted module header
	Name string

	// Path to the class-definition input, relative paths resolved against
	// the manifest directory
	Input string

	// Path to the persistent cache store; empty disables persistence
	CachePath string

	// Number of parallel link workers
	Workers int

	Optimize bool
	LogLevel string
}

// LoadManifest loads and validates the manifest at the given path.
func LoadManifest(path string) (*Manifest, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read manifest at `%s`: %w", path, err)
	}

	tomlMan := &tomlManifest{}
	if err := toml.Unmarshal(buff, tomlMan); err != nil {
		return nil, fmt.Errorf("error parsing manifest at `%s`: %w", path, err)
	}

	if tomlMan.Name == "" {
		return nil, fmt.Errorf("manifest at `%s` is missing required field `name`", path)
	}
	if tomlMan.Input == "" {
		return nil, fmt.Errorf("manifest at `%s` is missing required field `input`", path)
	}

	dir := filepath.Dir(path)
	manifest := &Manifest{
		Name:      tomlMan.Name,
		Input:     resolve(dir, tomlMan.Input),
		CachePath: tomlMan.CachePath,
		Workers:   tomlMan.Workers,
		Optimize:  tomlMan.Optimize,
		LogLevel:  tomlMan.LogLevel,
	}
	if manifest.CachePath != "" {
		manifest.CachePath = resolve(dir, manifest.CachePath)
	}
	if manifest.Workers <= 0 {
		manifest.Workers = runtime.GOMAXPROCS(0)
	}
	switch manifest.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("manifest at `%s` has invalid log-level `%s`", path, tomlMan.LogLevel)
	}

	return manifest, nil
}

func resolve(dir string, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
