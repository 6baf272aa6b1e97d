// Package config loads orgscope settings from ~/.orgscope/config.yaml and
// ORGSCOPE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/orgscope/internal/domain"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the config file inside ConfigDirName.
const ConfigFileName = "config.yaml"

// ConfigDirName is the per-user directory holding config and database.
const ConfigDirName = ".orgscope"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Chart    ChartConfig    `yaml:"chart"`
	View     ViewConfig     `yaml:"view"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	UseCases bool   `yaml:"use_cases"`
	Level    string `yaml:"level"`
}

// ChartConfig tunes the interaction engine.
type ChartConfig struct {
	ExpandAllLayerLimit int     `yaml:"expand_all_layer_limit"`
	MaxSearchResults    int     `yaml:"max_search_results"`
	PanDistance         float64 `yaml:"pan_distance"`
	HighlightDelayMs    int     `yaml:"highlight_delay_ms"`
	DefaultLayers       []int   `yaml:"default_layers"`
}

// ViewConfig tunes the terminal chart browser.
type ViewConfig struct {
	PanCells     int  `yaml:"pan_cells"`
	RestoreState bool `yaml:"restore_state"`
}

// DefaultConfig returns the built-in settings. home is used for the
// database path; an empty home puts it in the working directory.
func DefaultConfig(home string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(home, ConfigDirName, "orgscope.db")},
		Logging:  LoggingConfig{Level: "info"},
		Chart: ChartConfig{
			ExpandAllLayerLimit: 5,
			MaxSearchResults:    10,
			PanDistance:         100,
			HighlightDelayMs:    100,
			DefaultLayers:       domain.DefaultVisibleLayers(),
		},
		View: ViewConfig{PanCells: 4, RestoreState: true},
	}
}

// Load resolves the config file (ORGSCOPE_CONFIG or ~/.orgscope/config.yaml),
// applies environment overrides and validates the result. A missing file
// is not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	path := os.Getenv("ORGSCOPE_CONFIG")
	if path == "" {
		path = filepath.Join(home, ConfigDirName, ConfigFileName)
	}
	return LoadFromPath(path, home)
}

// LoadFromPath reads path over the defaults, then applies the environment.
func LoadFromPath(path, home string) (*Config, error) {
	cfg := DefaultConfig(home)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ORGSCOPE_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ORGSCOPE_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: ORGSCOPE_LOG_USE_CASES=%q is not a boolean", ErrInvalidConfig, v)
		}
		cfg.Logging.UseCases = b
	}
	if v := os.Getenv("ORGSCOPE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ORGSCOPE_LAYERS"); v != "" {
		layers, err := ParseLayers(v)
		if err != nil {
			return fmt.Errorf("%w: ORGSCOPE_LAYERS: %v", ErrInvalidConfig, err)
		}
		cfg.Chart.DefaultLayers = layers
	}
	return nil
}

// ParseLayers parses a comma-separated layer list such as "1,2,3" or
// "1-3,6". Duplicates are dropped and the result is sorted.
func ParseLayers(s string) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("layer %q is not a number", part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil || to < from {
				return nil, fmt.Errorf("layer range %q is invalid", part)
			}
		}
		for l := from; l <= to; l++ {
			seen[l] = true
		}
	}
	out := make([]int, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Ints(out)
	return out, nil
}

// FormatLayers is the inverse of ParseLayers, collapsing runs into ranges:
// [1 2 3 6] -> "1-3,6".
func FormatLayers(layers []int) string {
	var parts []string
	for i := 0; i < len(layers); {
		j := i
		for j+1 < len(layers) && layers[j+1] == layers[j]+1 {
			j++
		}
		if j > i {
			parts = append(parts, fmt.Sprintf("%d-%d", layers[i], layers[j]))
		} else {
			parts = append(parts, strconv.Itoa(layers[i]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func Validate(cfg *Config) error {
	if cfg.Database.Path == "" {
		return fmt.Errorf("%w: database.path must not be empty", ErrInvalidConfig)
	}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("%w: logging.level must be debug, info, warn or error, got %q", ErrInvalidConfig, cfg.Logging.Level)
	}
	if cfg.Chart.ExpandAllLayerLimit < 1 {
		return fmt.Errorf("%w: chart.expand_all_layer_limit must be positive, got %d", ErrInvalidConfig, cfg.Chart.ExpandAllLayerLimit)
	}
	if cfg.Chart.MaxSearchResults < 1 {
		return fmt.Errorf("%w: chart.max_search_results must be positive, got %d", ErrInvalidConfig, cfg.Chart.MaxSearchResults)
	}
	if cfg.Chart.PanDistance <= 0 {
		return fmt.Errorf("%w: chart.pan_distance must be positive, got %g", ErrInvalidConfig, cfg.Chart.PanDistance)
	}
	if cfg.Chart.HighlightDelayMs < 0 {
		return fmt.Errorf("%w: chart.highlight_delay_ms must not be negative, got %d", ErrInvalidConfig, cfg.Chart.HighlightDelayMs)
	}
	for _, l := range cfg.Chart.DefaultLayers {
		if l < domain.MinLevel || l > domain.MaxLevel {
			return fmt.Errorf("%w: chart.default_layers entry %d must be between %d and %d", ErrInvalidConfig, l, domain.MinLevel, domain.MaxLevel)
		}
	}
	if cfg.View.PanCells < 1 {
		return fmt.Errorf("%w: view.pan_cells must be positive, got %d", ErrInvalidConfig, cfg.View.PanCells)
	}
	return nil
}
