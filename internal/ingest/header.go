package ingest

import (
	"fmt"
	"strings"
)

// splitLines breaks decoded file content into lines, tolerating CRLF and a
// trailing newline.
func splitLines(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}

// findHeader locates the header row. A non-negative fixedOffset selects
// that line directly; otherwise the first maxScan lines are scanned for the
// marker substring.
func findHeader(lines []string, marker string, fixedOffset, maxScan int) (int, error) {
	if fixedOffset >= 0 {
		if fixedOffset >= len(lines) {
			return 0, fmt.Errorf("header offset %d beyond end of file (%d lines)", fixedOffset, len(lines))
		}
		return fixedOffset, nil
	}
	limit := maxScan
	if limit > len(lines) {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		if strings.Contains(lines[i], marker) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("header marker %q not found in first %d lines", marker, limit)
}
