// Package ticket collapses the row-per-item table into one row per
// receipt. Header-level fields repeat on every item row; the first-seen
// value wins and disagreements are counted per field for diagnostics
// without failing the run.
package ticket
