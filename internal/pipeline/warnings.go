package pipeline

import (
	"log/slog"
	"sort"
	"sync"
)

// Warning records one non-fatal per-file or per-row issue. Row is 1-based
// within the source file and 0 for file-level warnings.
type Warning struct {
	File   string
	Row    int
	Column string
	Value  string
	Reason string
}

// Collector accumulates warnings and per-reason counts for a run. Stages
// append to it instead of aborting; the report emitter writes the journal
// out as a CSV artifact.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
	reasons  map[string]int
	logger   *slog.Logger
}

// NewCollector returns a collector that echoes each warning to the logger.
// A nil logger disables echoing.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{reasons: make(map[string]int), logger: logger}
}

// Add records a warning.
func (c *Collector) Add(w Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.reasons[w.Reason]++
	c.mu.Unlock()
	if c.logger != nil {
		c.logger.Warn("row skipped",
			slog.String("file", w.File),
			slog.Int("row", w.Row),
			slog.String("column", w.Column),
			slog.String("value", w.Value),
			slog.String("reason", w.Reason),
		)
	}
}

// Count returns the total number of warnings recorded.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

// Warnings returns a copy of the recorded warnings in arrival order.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// ReasonCounts returns per-reason totals sorted by reason for stable
// diagnostics output.
func (c *Collector) ReasonCounts() []ReasonCount {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ReasonCount, 0, len(c.reasons))
	for reason, count := range c.reasons {
		out = append(out, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reason < out[j].Reason })
	return out
}

// ReasonCount pairs a drop reason with how many times it occurred.
type ReasonCount struct {
	Reason string
	Count  int
}
