// Package ingest reads vendor POS exports and normalizes them into the
// canonical row-per-item table.
//
// Vendor files arrive in unpredictable encodings (Shift_JIS or UTF-8) with
// metadata lines before the header, vendor-specific column names, embedded
// thousand separators, and cancelled or reversed rows. Ingest probes
// encodings in configured order, locates the header by offset or marker,
// maps columns through a per-vendor dictionary, cleans values, filters
// voided rows, and surfaces every dropped row through the warnings
// collector instead of failing the run.
package ingest
