// Package report materializes computed tables into artifacts: CSV files in
// spreadsheet-friendly form (UTF-8 with BOM, RFC 4180 quoting, ISO dates,
// plain yen integers) and standalone HTML charts. Slide-deck and Markdown
// rendering live outside this repository and consume these artifacts.
package report
