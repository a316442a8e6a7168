package pos

import (
	"math"
	"time"
)

// PeriodAggregate holds the KPI totals for one period and optional slice.
type PeriodAggregate struct {
	Period Period
	Slice  Slice

	OperatingDays int
	TicketCount   int
	CustomerCount int64
	Sales         int64

	// CustomerSales sums subtotals over tickets with a recorded customer
	// count. Per-customer metrics use it, so sales on tickets without
	// customers cannot inflate the spend ratio.
	CustomerSales int64
}

// SalesPerDay returns sales divided by operating days, NaN when the period
// has no operating days.
func (a PeriodAggregate) SalesPerDay() float64 {
	return safeDiv(float64(a.Sales), float64(a.OperatingDays))
}

// CustomersPerDay returns customers divided by operating days.
func (a PeriodAggregate) CustomersPerDay() float64 {
	return safeDiv(float64(a.CustomerCount), float64(a.OperatingDays))
}

// SpendPerCustomer returns customer-attributable sales divided by customer
// count, NaN when no customers were recorded.
func (a PeriodAggregate) SpendPerCustomer() float64 {
	return safeDiv(float64(a.CustomerSales), float64(a.CustomerCount))
}

// Values flattens the aggregate into the float KPI surface used by the
// comparator and decomposer. Derived ratios are NaN where undefined.
func (a PeriodAggregate) Values() KPIValues {
	return KPIValues{
		OperatingDays:    float64(a.OperatingDays),
		TicketCount:      float64(a.TicketCount),
		CustomerCount:    float64(a.CustomerCount),
		Sales:            float64(a.Sales),
		CustomerSales:    float64(a.CustomerSales),
		SalesPerDay:      a.SalesPerDay(),
		CustomersPerDay:  a.CustomersPerDay(),
		SpendPerCustomer: a.SpendPerCustomer(),
	}
}

// KPIValues is the float view of an aggregate. Trailing-mean comparisons
// average several aggregates into one KPIValues, which is why the counts
// are floats here.
type KPIValues struct {
	OperatingDays    float64
	TicketCount      float64
	CustomerCount    float64
	Sales            float64
	CustomerSales    float64
	SalesPerDay      float64
	CustomersPerDay  float64
	SpendPerCustomer float64
}

// ComparisonRow reports one KPI compared across two periods.
type ComparisonRow struct {
	Metric    string
	From      float64
	To        float64
	Diff      float64
	Ratio     float64
	PctChange float64
}

// FactorDecomposition splits a sales delta into the customer-count and
// spend-per-customer effects via the midpoint method.
type FactorDecomposition struct {
	Label                string
	DeltaSales           float64
	CustomerContribution float64
	SpendContribution    float64

	// ResidualSales is the part of the delta carried by tickets without a
	// recorded customer count. The two effects only cover
	// customer-attributable sales, so the residual closes the identity.
	ResidualSales float64
}

// OccupancySlot is one 10-minute bucket of estimated occupancy. SlotStart
// is the wall-clock start of the bucket; BusinessDate labels the operating
// day even when the bucket crosses midnight.
type OccupancySlot struct {
	BusinessDate time.Time
	SlotStart    time.Time
	Occupants    int
}

func safeDiv(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsNaN(num) {
		return math.NaN()
	}
	return num / den
}
