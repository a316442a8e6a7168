package config

import (
	"fmt"
	"strings"
	"time"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStore(); err != nil {
		return err
	}
	c.normalizeIngest()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStore() error {
	c.Store.Name = strings.TrimSpace(c.Store.Name)
	if c.Store.Name == "" {
		c.Store.Name = "store"
	}
	c.Store.Timezone = strings.TrimSpace(c.Store.Timezone)
	if c.Store.Timezone == "" {
		c.Store.Timezone = defaultTimezone
	}
	location, err := time.LoadLocation(c.Store.Timezone)
	if err != nil {
		return fmt.Errorf("store.timezone: %w", err)
	}
	c.location = location
	return nil
}

func (c *Config) normalizeIngest() {
	if len(c.Ingest.EncodingProbeOrder) == 0 {
		c.Ingest.EncodingProbeOrder = []string{"shift_jis", "utf-8"}
	}
	for i, name := range c.Ingest.EncodingProbeOrder {
		c.Ingest.EncodingProbeOrder[i] = strings.ToLower(strings.TrimSpace(name))
	}
	c.Ingest.HeaderMarker = strings.TrimSpace(c.Ingest.HeaderMarker)
	if c.Ingest.MetadataMaxLines <= 0 {
		c.Ingest.MetadataMaxLines = defaultMetadataMaxLines
	}
	c.Ingest.StatusColumn = strings.TrimSpace(c.Ingest.StatusColumn)
	c.Ingest.SignColumn = strings.TrimSpace(c.Ingest.SignColumn)
	cleaned := c.Ingest.ExclusionSubstrings[:0]
	for _, sub := range c.Ingest.ExclusionSubstrings {
		if trimmed := strings.TrimSpace(sub); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	c.Ingest.ExclusionSubstrings = cleaned
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
