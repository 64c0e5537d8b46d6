// Package config provides configuration management for rfiscan.
// Configuration is loaded from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (RFISCAN_*)
// 3. Project config (.rfiscan/config.yaml in cwd)
// 4. Home config (~/.rfiscan/config.yaml)
// 5. Defaults
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all rfiscan configuration.
type Config struct {
	// Output controls the default output format (table, json).
	Output string `yaml:"output" json:"output"`

	// Verbose enables verbose output.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Concurrency bounds batch fan-out (0 = number of CPUs).
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// Analysis settings
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`

	// Cohort settings
	Cohort CohortConfig `yaml:"cohort" json:"cohort"`
}

// AnalysisConfig holds the scoring tunables.
type AnalysisConfig struct {
	// ObservationDays restricts dormancy to the first N matrix columns.
	// Default: 180.
	ObservationDays int `yaml:"observation_days" json:"observation_days"`

	// DecayK is the relevance decay constant. Default: 1/30.
	DecayK float64 `yaml:"decay_k" json:"decay_k"`

	// RecencyCutoff zeroes relevance for episodes at least this old.
	// Default: 90.
	RecencyCutoff int `yaml:"recency_cutoff" json:"recency_cutoff"`

	// RecentWindow is the trailing span of the recent activity density
	// feature. Default: 30.
	RecentWindow int `yaml:"recent_window" json:"recent_window"`
}

// CohortConfig holds cohort-filtering tunables.
type CohortConfig struct {
	// DropoutStreak classifies a client as dropped out when their
	// longest inactivity streak reaches this many days. Default: 120.
	DropoutStreak int `yaml:"dropout_streak" json:"dropout_streak"`
}

// Default config values (used in resolution and validation).
const (
	defaultOutput          = "table"
	defaultObservationDays = 180
	defaultRecencyCutoff   = 90
	defaultRecentWindow    = 30
	defaultDropoutStreak   = 120
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: defaultOutput,
		Analysis: AnalysisConfig{
			ObservationDays: defaultObservationDays,
			DecayK:          1.0 / 30,
			RecencyCutoff:   defaultRecencyCutoff,
			RecentWindow:    defaultRecentWindow,
		},
		Cohort: CohortConfig{
			DropoutStreak: defaultDropoutStreak,
		},
	}
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	homeConfig, _ := loadFromPath(homeConfigPath())
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	projectConfig, _ := loadFromPath(projectConfigPath())
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	cfg = applyEnv(cfg)

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rfiscan", "config.yaml")
}

// projectConfigPath returns the project config path.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("RFISCAN_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".rfiscan", "config.yaml")
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("RFISCAN_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("RFISCAN_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := envInt("RFISCAN_CONCURRENCY"); v != 0 {
		cfg.Concurrency = v
	}
	if v := envInt("RFISCAN_OBSERVATION_DAYS"); v != 0 {
		cfg.Analysis.ObservationDays = v
	}
	if v := envFloat("RFISCAN_DECAY_K"); v != 0 {
		cfg.Analysis.DecayK = v
	}
	if v := envInt("RFISCAN_RECENCY_CUTOFF"); v != 0 {
		cfg.Analysis.RecencyCutoff = v
	}
	if v := envInt("RFISCAN_RECENT_WINDOW"); v != 0 {
		cfg.Analysis.RecentWindow = v
	}
	if v := envInt("RFISCAN_DROPOUT_STREAK"); v != 0 {
		cfg.Cohort.DropoutStreak = v
	}
	return cfg
}

// envInt parses an integer environment variable, 0 when unset or invalid.
func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

// envFloat parses a float environment variable, 0 when unset or invalid.
func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeInt overwrites dst with src when src is non-zero.
func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// mergeFloat overwrites dst with src when src is non-zero.
func mergeFloat(dst *float64, src float64) {
	if src != 0 {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Output, src.Output)
	if src.Verbose {
		dst.Verbose = true
	}
	mergeInt(&dst.Concurrency, src.Concurrency)

	mergeInt(&dst.Analysis.ObservationDays, src.Analysis.ObservationDays)
	mergeFloat(&dst.Analysis.DecayK, src.Analysis.DecayK)
	mergeInt(&dst.Analysis.RecencyCutoff, src.Analysis.RecencyCutoff)
	mergeInt(&dst.Analysis.RecentWindow, src.Analysis.RecentWindow)
	mergeInt(&dst.Cohort.DropoutStreak, src.Cohort.DropoutStreak)

	return dst
}
