package kpi

import (
	"sort"

	"posreport/internal/pos"
)

// DaypartRow is one aggregate line in a monthly or weekly KPI table.
// Daypart is "Total", "Lunch", or "Dinner".
type DaypartRow struct {
	Daypart   string
	Aggregate pos.PeriodAggregate
}

// PeriodRows pairs a period with its Total/Lunch/Dinner aggregates.
type PeriodRows struct {
	Period pos.Period
	Rows   []DaypartRow
}

// Monthly produces one PeriodRows per calendar month present in the ticket
// set, ordered chronologically. Excluded months never appear.
func (e *Engine) Monthly(tickets []pos.Ticket) []PeriodRows {
	periods := make(map[string]pos.Period)
	for _, t := range tickets {
		if e.Excluded(t.BusinessDate) {
			continue
		}
		p := pos.MonthPeriod(t.BusinessDate.Year(), t.BusinessDate.Month())
		periods[p.Label] = p
	}
	return e.tabulate(tickets, periods)
}

// Weekly produces one PeriodRows per ISO week present in the ticket set.
func (e *Engine) Weekly(tickets []pos.Ticket) []PeriodRows {
	periods := make(map[string]pos.Period)
	for _, t := range tickets {
		if e.Excluded(t.BusinessDate) {
			continue
		}
		isoYear, isoWeek := t.BusinessDate.ISOWeek()
		p := pos.ISOWeekPeriod(isoYear, isoWeek)
		periods[p.Label] = p
	}
	return e.tabulate(tickets, periods)
}

func (e *Engine) tabulate(tickets []pos.Ticket, periods map[string]pos.Period) []PeriodRows {
	labels := make([]string, 0, len(periods))
	for label := range periods {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return periods[labels[i]].Start.Before(periods[labels[j]].Start)
	})

	out := make([]PeriodRows, 0, len(labels))
	for _, label := range labels {
		period := periods[label]
		rows := []DaypartRow{
			{Daypart: "Total", Aggregate: e.Aggregate(tickets, period, nil)},
			{Daypart: string(pos.DaypartLunch), Aggregate: e.Aggregate(tickets, period, pos.Slice{pos.AxisDaypart: string(pos.DaypartLunch)})},
			{Daypart: string(pos.DaypartDinner), Aggregate: e.Aggregate(tickets, period, pos.Slice{pos.AxisDaypart: string(pos.DaypartDinner)})},
		}
		out = append(out, PeriodRows{Period: period, Rows: rows})
	}
	return out
}

// TrailingPeriods returns the n periods immediately preceding target at the
// same granularity, oldest first, for trailing-mean comparisons.
func TrailingPeriods(target pos.Period, n int) []pos.Period {
	out := make([]pos.Period, n)
	current := target
	for i := n - 1; i >= 0; i-- {
		current = current.Previous()
		out[i] = current
	}
	return out
}
