package pos

import (
	"sort"
	"strings"
)

// Axis names one dimension tickets can be sliced along.
type Axis string

const (
	AxisWeekday    Axis = "weekday"
	AxisHourBucket Axis = "hour_bucket"
	AxisPartySize  Axis = "party_size"
	AxisDaypart    Axis = "daypart"
	AxisCategory1  Axis = "category1"
	AxisProduct    Axis = "product_code"
)

var allAxes = []Axis{AxisWeekday, AxisHourBucket, AxisPartySize, AxisDaypart, AxisCategory1, AxisProduct}

// ParseAxis validates an axis name from the CLI.
func ParseAxis(name string) (Axis, bool) {
	candidate := Axis(strings.ToLower(strings.TrimSpace(name)))
	for _, axis := range allAxes {
		if axis == candidate {
			return axis, true
		}
	}
	return "", false
}

// Axes returns the supported axis names in display order.
func Axes() []Axis {
	out := make([]Axis, len(allAxes))
	copy(out, allAxes)
	return out
}

// Slice restricts tickets to at most one value along each axis. A missing
// axis means "all tickets".
type Slice map[Axis]string

// IsEmpty reports whether the slice has no predicates.
func (s Slice) IsEmpty() bool { return len(s) == 0 }

// With returns a copy of the slice with one more predicate set.
func (s Slice) With(axis Axis, value string) Slice {
	out := make(Slice, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[axis] = value
	return out
}

// String renders the slice predicates as "axis=value" pairs in a stable
// order, or "all" when empty.
func (s Slice) String() string {
	if len(s) == 0 {
		return "all"
	}
	parts := make([]string, 0, len(s))
	for axis, value := range s {
		parts = append(parts, string(axis)+"="+value)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
