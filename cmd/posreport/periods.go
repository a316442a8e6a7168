package main

import (
	"fmt"
	"regexp"
	"strconv"

	"posreport/internal/kpi"
	"posreport/internal/pipeline"
	"posreport/internal/pos"
)

// periodSet is one side of a comparison: a single period, or several for a
// trailing-N mean.
type periodSet struct {
	label   string
	periods []pos.Period
}

// span returns a single period covering the whole set, used when a slice
// vocabulary has to be collected across every member.
func (ps periodSet) span() pos.Period {
	if len(ps.periods) == 1 {
		return ps.periods[0]
	}
	first := ps.periods[0]
	last := ps.periods[len(ps.periods)-1]
	return pos.RangePeriod(first.Start, last.End, ps.label)
}

var trailingPattern = regexp.MustCompile(`^trailing:(\d+)$`)

// resolvePeriodArg parses a --from/--to argument. Besides the literal
// period grammar it accepts "previous", "year-ago", and "trailing:N", all
// relative to the anchor period (the --to side).
func resolvePeriodArg(flag, arg string, anchor pos.Period) (periodSet, error) {
	switch arg {
	case "previous":
		if anchor.IsZero() {
			return periodSet{}, pipeline.Wrap(pipeline.ErrUsage, "", flag, `"previous" needs a concrete --to period`, nil)
		}
		p := anchor.Previous()
		return periodSet{label: p.Label, periods: []pos.Period{p}}, nil
	case "year-ago":
		if anchor.IsZero() {
			return periodSet{}, pipeline.Wrap(pipeline.ErrUsage, "", flag, `"year-ago" needs a concrete --to period`, nil)
		}
		p := anchor.YearAgo()
		return periodSet{label: p.Label, periods: []pos.Period{p}}, nil
	}
	if m := trailingPattern.FindStringSubmatch(arg); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n < 1 {
			return periodSet{}, pipeline.Wrap(pipeline.ErrUsage, "", flag, "trailing window must be at least 1", nil)
		}
		if anchor.IsZero() {
			return periodSet{}, pipeline.Wrap(pipeline.ErrUsage, "", flag, "trailing:N needs a concrete --to period", nil)
		}
		return periodSet{
			label:   fmt.Sprintf("trailing_%d_before_%s", n, anchor.Label),
			periods: kpi.TrailingPeriods(anchor, n),
		}, nil
	}
	p, err := pos.ParsePeriod(arg)
	if err != nil {
		return periodSet{}, pipeline.Wrap(pipeline.ErrUsage, "", flag, err.Error(), nil)
	}
	return periodSet{label: p.Label, periods: []pos.Period{p}}, nil
}

// valuesFor aggregates one comparison side. A multi-period set comes back
// as the trailing mean.
func valuesFor(engine *kpi.Engine, tickets []pos.Ticket, ps periodSet, slice pos.Slice) pos.KPIValues {
	if len(ps.periods) == 1 {
		return engine.Aggregate(tickets, ps.periods[0], slice).Values()
	}
	aggregates := make([]pos.PeriodAggregate, 0, len(ps.periods))
	for _, p := range ps.periods {
		aggregates = append(aggregates, engine.Aggregate(tickets, p, slice))
	}
	return kpi.Mean(aggregates)
}
