package config

import (
	"errors"
	"fmt"

	"posreport/internal/businessday"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStore() error {
	rules := businessday.Rules{
		CutoffHour:       c.Store.CutoffHour,
		DaypartSplitHour: c.Store.DaypartSplitHour,
	}
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if c.Store.HourBucketHours < 1 || 24%c.Store.HourBucketHours != 0 {
		return fmt.Errorf("store.hour_bucket_hours: %d must be a divisor of 24", c.Store.HourBucketHours)
	}
	// No global default for clipping: the limit must be stated explicitly
	// when clipping is requested.
	if c.Store.ClipDurations && c.Store.MaxDurationMinutes <= 0 {
		return errors.New("store.max_duration_minutes must be positive when store.clip_durations is true")
	}
	for _, m := range c.Store.ExcludedMonths {
		if m < 1 || m > 12 {
			return fmt.Errorf("store.excluded_months: month %d out of range [1,12]", m)
		}
	}
	return nil
}

func (c *Config) validateIngest() error {
	for _, name := range c.Ingest.EncodingProbeOrder {
		switch name {
		case "shift_jis", "sjis", "cp932", "utf-8", "utf8":
		default:
			return fmt.Errorf("ingest.encoding_probe_order: unsupported encoding %q", name)
		}
	}
	if c.Ingest.HeaderOffset < 0 && c.Ingest.HeaderMarker == "" {
		return errors.New("ingest: either header_offset or header_marker must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
