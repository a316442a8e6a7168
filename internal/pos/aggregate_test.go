package pos_test

import (
	"math"
	"testing"

	"posreport/internal/pos"
)

func TestDerivedRatios(t *testing.T) {
	agg := pos.PeriodAggregate{
		OperatingDays: 20,
		TicketCount:   400,
		CustomerCount: 1000,
		Sales:         6_000_000,
		CustomerSales: 6_000_000,
	}
	if got := agg.SalesPerDay(); got != 300_000 {
		t.Fatalf("SalesPerDay = %f", got)
	}
	if got := agg.CustomersPerDay(); got != 50 {
		t.Fatalf("CustomersPerDay = %f", got)
	}
	if got := agg.SpendPerCustomer(); got != 6_000 {
		t.Fatalf("SpendPerCustomer = %f", got)
	}

	// Sales on zero-customer tickets stay out of the spend numerator.
	agg.CustomerSales = 5_000_000
	if got := agg.SpendPerCustomer(); got != 5_000 {
		t.Fatalf("SpendPerCustomer = %f, want 5000 over customer sales", got)
	}
}

func TestDerivedRatiosAreNaNOnZeroDenominator(t *testing.T) {
	empty := pos.PeriodAggregate{}
	if !math.IsNaN(empty.SalesPerDay()) {
		t.Fatal("SalesPerDay over zero days should be NaN")
	}
	if !math.IsNaN(empty.SpendPerCustomer()) {
		t.Fatal("SpendPerCustomer over zero customers should be NaN")
	}

	// Sales without customers happens when every ticket in the period has a
	// zero customer count. The total survives; the ratio does not.
	noCustomers := pos.PeriodAggregate{OperatingDays: 1, TicketCount: 3, Sales: 4500}
	if !math.IsNaN(noCustomers.SpendPerCustomer()) {
		t.Fatal("SpendPerCustomer should be NaN with zero customers")
	}
	if got := noCustomers.SalesPerDay(); got != 4500 {
		t.Fatalf("SalesPerDay = %f, want 4500", got)
	}
}

func TestValuesCarriesNaNThrough(t *testing.T) {
	values := pos.PeriodAggregate{OperatingDays: 2, Sales: 1000}.Values()
	if values.Sales != 1000 || values.OperatingDays != 2 {
		t.Fatalf("unexpected totals: %+v", values)
	}
	if values.SalesPerDay != 500 {
		t.Fatalf("SalesPerDay = %f", values.SalesPerDay)
	}
	if !math.IsNaN(values.SpendPerCustomer) {
		t.Fatal("SpendPerCustomer should be NaN")
	}
}
