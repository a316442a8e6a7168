package pos

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// PartySizeBucket maps a customer count to its reporting bucket.
func PartySizeBucket(customerCount int) string {
	switch {
	case customerCount <= 1:
		return "1"
	case customerCount == 2:
		return "2"
	case customerCount <= 4:
		return "3-4"
	default:
		return "5+"
	}
}

// PartySizeBuckets lists the buckets in display order.
func PartySizeBuckets() []string {
	return []string{"1", "2", "3-4", "5+"}
}

// HourBucketLabel renders the bucket containing an adjusted hour at the
// given width in hours. One-hour buckets keep the bare "14:00" form; wider
// buckets show their half-open range, "14:00-16:00". Late-night hours keep
// their 24-shifted form ("26:00") so lexicographic order matches
// operating-day order.
func HourBucketLabel(adjustedHour, widthHours int) string {
	if widthHours <= 1 {
		return fmt.Sprintf("%02d:00", adjustedHour)
	}
	start := adjustedHour / widthHours * widthHours
	return fmt.Sprintf("%02d:00-%02d:00", start, start+widthHours)
}

// hourBucketContains reports whether an adjusted hour falls inside a bucket
// label produced by HourBucketLabel.
func hourBucketContains(label string, adjustedHour int) bool {
	startLabel, endLabel, ranged := strings.Cut(label, "-")
	start, ok := parseHourLabel(startLabel)
	if !ok {
		return false
	}
	if !ranged {
		return adjustedHour == start
	}
	end, ok := parseHourLabel(endLabel)
	if !ok {
		return false
	}
	return start <= adjustedHour && adjustedHour < end
}

func parseHourLabel(label string) (int, bool) {
	hour, minutes, ok := strings.Cut(label, ":")
	if !ok || minutes != "00" {
		return 0, false
	}
	n, err := strconv.Atoi(hour)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AxisValue returns the ticket's value along the given axis. Product slices
// match any of the ticket's product codes, so they are handled by Matches
// rather than a single value; AxisValue returns "" for them.
func (t Ticket) AxisValue(axis Axis) string {
	switch axis {
	case AxisWeekday:
		return t.Weekday.String()[:3]
	case AxisHourBucket:
		return HourBucketLabel(t.AdjustedHour, 1)
	case AxisPartySize:
		return PartySizeBucket(t.CustomerCount)
	case AxisDaypart:
		return string(t.Daypart)
	case AxisCategory1:
		return t.Category1
	default:
		return ""
	}
}

// Matches reports whether the ticket satisfies every predicate in the slice.
func (s Slice) Matches(t Ticket) bool {
	for axis, want := range s {
		if axis == AxisProduct {
			if !slices.Contains(t.ProductCodes, want) {
				return false
			}
			continue
		}
		if axis == AxisHourBucket {
			if !hourBucketContains(want, t.AdjustedHour) {
				return false
			}
			continue
		}
		if t.AxisValue(axis) != want {
			return false
		}
	}
	return true
}
