package businessday

import (
	"fmt"
	"time"

	"posreport/internal/pos"
)

// Rules carries the per-store timing configuration.
type Rules struct {
	// CutoffHour is the local hour before which a timestamp belongs to the
	// previous operating day. Typically 5 or 6.
	CutoffHour int
	// DaypartSplitHour divides Lunch from Dinner on the adjusted hour.
	// Typically 16.
	DaypartSplitHour int
}

// Validate checks the rules are internally consistent.
func (r Rules) Validate() error {
	if r.CutoffHour < 0 || r.CutoffHour > 12 {
		return fmt.Errorf("cutoff_hour %d out of range [0,12]", r.CutoffHour)
	}
	if r.DaypartSplitHour < r.CutoffHour || r.DaypartSplitHour >= r.CutoffHour+24 {
		return fmt.Errorf("daypart_split_hour %d must lie within the operating day starting at %d", r.DaypartSplitHour, r.CutoffHour)
	}
	return nil
}

// BusinessDate returns the operating day the timestamp belongs to, as a
// midnight-UTC date value. Timestamps before the cutoff hour roll back to
// the previous calendar date.
func (r Rules) BusinessDate(t time.Time) time.Time {
	date := pos.DateOnly(t)
	if t.Hour() < r.CutoffHour {
		date = date.AddDate(0, 0, -1)
	}
	return date
}

// AdjustedHour returns the late-night-aware hour h': the local hour, plus
// 24 when it falls before the cutoff, so 02:00 becomes 26.
func (r Rules) AdjustedHour(t time.Time) int {
	h := t.Hour()
	if h < r.CutoffHour {
		h += 24
	}
	return h
}

// Daypart classifies an entry timestamp into Lunch or Dinner on the
// adjusted hour.
func (r Rules) Daypart(t time.Time) pos.Daypart {
	if r.AdjustedHour(t) < r.DaypartSplitHour {
		return pos.DaypartLunch
	}
	return pos.DaypartDinner
}
