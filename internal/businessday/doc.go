// Package businessday maps wall-clock timestamps onto operating days and
// dayparts. A store with a late-night cutoff attributes sales before the
// cutoff hour to the previous calendar date, and classifies entries into
// Lunch or Dinner using a 24-shifted hour so late-night slots sort after
// the evening.
package businessday
