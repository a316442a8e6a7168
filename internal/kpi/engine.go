package kpi

import (
	"time"

	"posreport/internal/pos"
)

// Engine computes PeriodAggregates over a ticket set with the store's
// exclusion rules applied.
type Engine struct {
	// ExcludedMonths drops operating days whose calendar month is in the
	// set before any aggregation.
	ExcludedMonths map[time.Month]struct{}
	// StrictTicketCount excludes zero-subtotal tickets from ticket counts.
	StrictTicketCount bool
	// HourBucketHours sets the hour-bucket slicing width. Zero means one
	// hour.
	HourBucketHours int
}

// HourBucketWidth returns the configured hour-bucket width in hours.
func (e *Engine) HourBucketWidth() int {
	if e.HourBucketHours < 1 {
		return 1
	}
	return e.HourBucketHours
}

// Excluded reports whether the business date falls in an excluded month.
func (e *Engine) Excluded(businessDate time.Time) bool {
	if len(e.ExcludedMonths) == 0 {
		return false
	}
	_, excluded := e.ExcludedMonths[businessDate.Month()]
	return excluded
}

// Restrict returns the tickets inside the period and slice, with excluded
// months dropped. A zero period keeps every ticket.
func (e *Engine) Restrict(tickets []pos.Ticket, period pos.Period, slice pos.Slice) []pos.Ticket {
	out := make([]pos.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if e.Excluded(t.BusinessDate) {
			continue
		}
		if !period.IsZero() && !period.Contains(t.BusinessDate) {
			continue
		}
		if !slice.Matches(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Aggregate computes the PeriodAggregate for the tickets matching the
// period and slice. A period with no matching tickets yields an empty
// aggregate whose derived ratios are NaN.
func (e *Engine) Aggregate(tickets []pos.Ticket, period pos.Period, slice pos.Slice) pos.PeriodAggregate {
	agg := pos.PeriodAggregate{Period: period, Slice: slice}
	days := make(map[time.Time]struct{})
	for _, t := range e.Restrict(tickets, period, slice) {
		if e.StrictTicketCount && t.Subtotal == 0 {
			continue
		}
		days[t.BusinessDate] = struct{}{}
		agg.TicketCount++
		agg.Sales += t.Subtotal
		if t.CountsForCustomers() {
			agg.CustomerCount += int64(t.CustomerCount)
			agg.CustomerSales += t.Subtotal
		}
	}
	agg.OperatingDays = len(days)
	return agg
}

// Mean averages several aggregates into one KPI surface, used for
// trailing-N-period comparisons. An empty input returns all-NaN derived
// ratios and zero totals.
func Mean(aggregates []pos.PeriodAggregate) pos.KPIValues {
	if len(aggregates) == 0 {
		return pos.PeriodAggregate{}.Values()
	}
	var sum pos.PeriodAggregate
	for _, agg := range aggregates {
		sum.OperatingDays += agg.OperatingDays
		sum.TicketCount += agg.TicketCount
		sum.CustomerCount += agg.CustomerCount
		sum.Sales += agg.Sales
		sum.CustomerSales += agg.CustomerSales
	}
	n := float64(len(aggregates))
	values := sum.Values()
	values.OperatingDays /= n
	values.TicketCount /= n
	values.CustomerCount /= n
	values.Sales /= n
	values.CustomerSales /= n
	// Per-day and per-customer ratios are computed over the pooled totals,
	// so they need no further scaling.
	return values
}
