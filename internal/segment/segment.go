// Package segment cross-tabulates tickets along reporting axes: weekday,
// hour bucket, party-size bucket, daypart, category, and product code.
// Every output row carries operating days so per-day-normalized KPIs stay
// comparable across periods of unequal length.
package segment

import (
	"sort"
	"time"

	"posreport/internal/kpi"
	"posreport/internal/pos"
)

// Row is one cell of a cross-tabulation: the axis value and its aggregate.
type Row struct {
	Axis      pos.Axis
	Value     string
	Aggregate pos.PeriodAggregate
}

// weekdayOrder fixes the display order independent of aggregation order.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// CrossTab aggregates the tickets inside period along one axis, returning
// one row per axis value in display order. Values with no tickets in the
// period are omitted except for fixed-vocabulary axes (weekday, party
// size, daypart), which always show every bucket.
func CrossTab(engine *kpi.Engine, tickets []pos.Ticket, period pos.Period, axis pos.Axis) []Row {
	values := axisValues(engine, tickets, period, axis)
	rows := make([]Row, 0, len(values))
	for _, value := range values {
		slice := pos.Slice{axis: value}
		rows = append(rows, Row{
			Axis:      axis,
			Value:     value,
			Aggregate: engine.Aggregate(tickets, period, slice),
		})
	}
	return rows
}

func axisValues(engine *kpi.Engine, tickets []pos.Ticket, period pos.Period, axis pos.Axis) []string {
	switch axis {
	case pos.AxisWeekday:
		values := make([]string, 0, len(weekdayOrder))
		for _, day := range weekdayOrder {
			values = append(values, day.String()[:3])
		}
		return values
	case pos.AxisPartySize:
		return pos.PartySizeBuckets()
	case pos.AxisDaypart:
		return []string{string(pos.DaypartLunch), string(pos.DaypartDinner)}
	case pos.AxisHourBucket:
		return observedHourBuckets(engine, tickets, period)
	case pos.AxisProduct:
		return observedProducts(engine, tickets, period)
	default:
		return observedValues(engine, tickets, period, axis)
	}
}

// observedHourBuckets returns the hour buckets present in the data at the
// engine's bucket width, sorted by adjusted hour so late-night buckets
// follow the evening.
func observedHourBuckets(engine *kpi.Engine, tickets []pos.Ticket, period pos.Period) []string {
	width := engine.HourBucketWidth()
	starts := make(map[int]struct{})
	for _, t := range engine.Restrict(tickets, period, nil) {
		starts[t.AdjustedHour/width*width] = struct{}{}
	}
	ordered := make([]int, 0, len(starts))
	for h := range starts {
		ordered = append(ordered, h)
	}
	sort.Ints(ordered)
	values := make([]string, 0, len(ordered))
	for _, h := range ordered {
		values = append(values, pos.HourBucketLabel(h, width))
	}
	return values
}

func observedProducts(engine *kpi.Engine, tickets []pos.Ticket, period pos.Period) []string {
	seen := make(map[string]struct{})
	for _, t := range engine.Restrict(tickets, period, nil) {
		for _, code := range t.ProductCodes {
			seen[code] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for code := range seen {
		values = append(values, code)
	}
	sort.Strings(values)
	return values
}

func observedValues(engine *kpi.Engine, tickets []pos.Ticket, period pos.Period, axis pos.Axis) []string {
	seen := make(map[string]struct{})
	for _, t := range engine.Restrict(tickets, period, nil) {
		if value := t.AxisValue(axis); value != "" {
			seen[value] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// SliceValues returns the axis values to iterate for per-slice comparison
// and decomposition tables, unioned across both periods so a value present
// in only one side still appears.
func SliceValues(engine *kpi.Engine, tickets []pos.Ticket, from, to pos.Period, axis pos.Axis) []string {
	switch axis {
	case pos.AxisWeekday, pos.AxisPartySize, pos.AxisDaypart:
		return axisValues(engine, tickets, from, axis)
	}
	seen := make(map[string]struct{})
	for _, period := range []pos.Period{from, to} {
		for _, value := range axisValues(engine, tickets, period, axis) {
			seen[value] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
