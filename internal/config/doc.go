// Package config loads, normalizes, and validates the per-store settings
// bundle that drives the pipeline.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves the store timezone. The Config
// type centralizes every knob the CLI needs: input/output directories, the
// encoding probe order, header detection, business-day timing, duration
// clipping, excluded months, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a resolved location, and clear validation errors.
package config
