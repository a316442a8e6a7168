package main

import (
	"fmt"
	"math"
	"strconv"

	"posreport/internal/pos"
)

// displayFloat renders a derived KPI for terminal tables; NaN shows as an
// em-dash.
func displayFloat(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func displayRatio(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%+.1f%%", v)
}

func kpiTableRow(label string, agg pos.PeriodAggregate) []string {
	return []string{
		label,
		strconv.Itoa(agg.OperatingDays),
		strconv.Itoa(agg.TicketCount),
		strconv.FormatInt(agg.CustomerCount, 10),
		strconv.FormatInt(agg.Sales, 10),
		displayFloat(agg.SalesPerDay()),
		displayFloat(agg.SpendPerCustomer()),
	}
}

var kpiTableHeader = []string{"period", "days", "tickets", "customers", "sales", "sales/day", "spend/customer"}

var kpiTableAligns = []columnAlignment{
	alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight,
}
