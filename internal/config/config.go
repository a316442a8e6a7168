package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Store contains the per-store business rules.
type Store struct {
	Name               string `toml:"name"`
	Timezone           string `toml:"timezone"`
	CutoffHour         int    `toml:"cutoff_hour"`
	DaypartSplitHour   int    `toml:"daypart_split_hour"`
	HourBucketHours    int    `toml:"hour_bucket_hours"`
	ClipDurations      bool   `toml:"clip_durations"`
	MaxDurationMinutes int    `toml:"max_duration_minutes"`
	ExcludedMonths     []int  `toml:"excluded_months"`
	StrictTicketCount  bool   `toml:"strict_ticket_count"`
}

// Ingest contains vendor CSV parsing configuration.
type Ingest struct {
	EncodingProbeOrder  []string          `toml:"encoding_probe_order"`
	HeaderMarker        string            `toml:"header_marker"`
	HeaderOffset        int               `toml:"header_offset"`
	MetadataMaxLines    int               `toml:"metadata_max_lines"`
	ExclusionSubstrings []string          `toml:"exclusion_substrings"`
	StatusColumn        string            `toml:"status_column"`
	CancelValues        []string          `toml:"cancel_values"`
	SignColumn          string            `toml:"sign_column"`
	ColumnMap           map[string]string `toml:"column_map"`
}

// Reports contains artifact emission configuration.
type Reports struct {
	Charts       bool `toml:"charts"`
	WarnExitCode bool `toml:"warn_exit_code"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for a single store.
//
// Configuration sections by subsystem:
//   - Paths: input snapshot, run output root, and log directories
//   - Store: business-day timing, duration clipping, excluded months
//   - Ingest: encoding probe order, header detection, column mapping, filters
//   - Reports: chart emission and warning exit-code behavior
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Store   Store   `toml:"store"`
	Ingest  Ingest  `toml:"ingest"`
	Reports Reports `toml:"reports"`
	Logging Logging `toml:"logging"`

	location *time.Location
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/posreport/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and the store timezone resolved.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("posreport.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// Location returns the store's resolved timezone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// ExcludedMonthSet returns the excluded months as a set keyed by
// time.Month.
func (c *Config) ExcludedMonthSet() map[time.Month]struct{} {
	set := make(map[time.Month]struct{}, len(c.Store.ExcludedMonths))
	for _, m := range c.Store.ExcludedMonths {
		set[time.Month(m)] = struct{}{}
	}
	return set
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
