// Package compare aligns two period aggregates and produces per-KPI
// difference rows: absolute delta, ratio, and percent change. Ratios with a
// zero or NaN denominator come out NaN; the emitter decides how to render
// them.
package compare

import (
	"math"

	"posreport/internal/pos"
)

// Metrics lists the KPI names in display order.
var Metrics = []string{
	"operating_days",
	"ticket_count",
	"customer_count",
	"sales",
	"sales_per_day",
	"customers_per_day",
	"spend_per_customer",
}

// Compare produces one ComparisonRow per KPI for from → to.
func Compare(from, to pos.KPIValues) []pos.ComparisonRow {
	pairs := []struct {
		metric   string
		from, to float64
	}{
		{"operating_days", from.OperatingDays, to.OperatingDays},
		{"ticket_count", from.TicketCount, to.TicketCount},
		{"customer_count", from.CustomerCount, to.CustomerCount},
		{"sales", from.Sales, to.Sales},
		{"sales_per_day", from.SalesPerDay, to.SalesPerDay},
		{"customers_per_day", from.CustomersPerDay, to.CustomersPerDay},
		{"spend_per_customer", from.SpendPerCustomer, to.SpendPerCustomer},
	}

	rows := make([]pos.ComparisonRow, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, row(p.metric, p.from, p.to))
	}
	return rows
}

func row(metric string, from, to float64) pos.ComparisonRow {
	ratio := math.NaN()
	if from != 0 && !math.IsNaN(from) && !math.IsNaN(to) {
		ratio = to / from
	}
	return pos.ComparisonRow{
		Metric:    metric,
		From:      from,
		To:        to,
		Diff:      to - from,
		Ratio:     ratio,
		PctChange: (ratio - 1) * 100,
	}
}
