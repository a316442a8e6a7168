package ingest

import (
	"strconv"
	"strings"
	"time"
)

// parseYen parses a locale-formatted integer amount. Commas (half or full
// width) are thousand separators, never decimals; currency marks and
// surrounding whitespace are dropped; full-width digits are normalized. A
// false result is a tombstone for the caller, not a zero.
func parseYen(raw string) (int64, bool) {
	cleaned := strings.Map(normalizeNumericRune, strings.TrimSpace(raw))
	if cleaned == "" || cleaned == "-" {
		return 0, false
	}
	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func normalizeNumericRune(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r
	case r >= '０' && r <= '９':
		return '0' + (r - '０')
	case r == '-' || r == '−':
		return '-'
	case r == ',' || r == '，' || r == '¥' || r == '￥' || r == ' ' || r == '　':
		return -1
	default:
		return r
	}
}

// parseCount parses a small non-negative integer such as a customer count
// or quantity.
func parseCount(raw string) (int, bool) {
	value, ok := parseYen(raw)
	if !ok || value < 0 || value > 1<<31-1 {
		return 0, false
	}
	return int(value), true
}

var timestampLayouts = []string{
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// Timestamps outside this window are treated as corrupt exports.
var (
	plausibleMin = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	plausibleMax = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
)

// parseTimestamp parses a vendor timestamp in the store's timezone and
// rejects values outside the plausible range.
func parseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		ts, err := time.ParseInLocation(layout, trimmed, loc)
		if err != nil {
			continue
		}
		if ts.Before(plausibleMin) || !ts.Before(plausibleMax) {
			return time.Time{}, false
		}
		return ts, true
	}
	return time.Time{}, false
}
