// Package store persists one run's canonical snapshot in a SQLite database
// inside the run directory: normalized raw rows, the collapsed ticket
// table, and the warnings journal. Downstream subcommands read the
// snapshot instead of re-ingesting the vendor files. The database never
// outlives its run directory.
package store
