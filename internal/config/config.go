// Package config loads and validates the optional .breezeway YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for from the working directory upward.
const FileName = ".breezeway"

// Default values for invoker configuration.
const (
	DefaultMaxOutput   = 1 << 20 // 1 MB
	DefaultTranscripts = 20
)

// Config holds the parsed .breezeway configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version        int    `yaml:"version"`
	Binary         string `yaml:"binary"`      // explicit path to the breeze executable
	Source         string `yaml:"source"`      // breeze source checkout used by `breezeway setup`
	RawTimeout     string `yaml:"timeout"`     // e.g. "2m", "30s"; empty means no timeout
	RawMaxOutput   int    `yaml:"max_output"`  // bytes
	RawTranscripts int    `yaml:"transcripts"` // in-memory transcript cache size
}

// Timeout returns the configured per-invocation timeout. Zero means no
// timeout: a hung breeze process blocks the caller indefinitely, which is
// the default behavior.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// MaxOutputBytes returns the configured output cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// TranscriptCacheSize returns the configured cache size or the default.
func (c *Config) TranscriptCacheSize() int {
	if c.RawTranscripts > 0 {
		return c.RawTranscripts
	}
	return DefaultTranscripts
}

// LoadResult holds the parsed config and the directory it was found in.
type LoadResult struct {
	Config *Config
	Root   string // directory containing .breezeway; falls back to the start dir
}

// Load reads the nearest .breezeway file, discovered by walking upward from
// dir. If no file exists anywhere on the path to the filesystem root, a
// default Config is returned.
func Load(dir string) (*LoadResult, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	path, root, ok := findConfig(dir)
	if !ok {
		return &LoadResult{Config: &Config{}, Root: dir}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &LoadResult{Config: cfg, Root: root}, nil
}

// findConfig walks upward from dir looking for a .breezeway file.
func findConfig(dir string) (path, root string, ok bool) {
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", false
		}
		dir = parent
	}
}
