// Package pipeline provides the error classification and warning plumbing
// shared by every stage. Stage errors are wrapped with a sentinel marker so
// the CLI can map failures onto the documented process exit codes, and
// per-row issues flow through a Collector instead of aborting a run.
package pipeline
