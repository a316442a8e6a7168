package factor_test

import (
	"math"
	"testing"

	"posreport/internal/factor"
	"posreport/internal/pos"
)

func TestDecomposeMidpointMethod(t *testing.T) {
	from := pos.PeriodAggregate{OperatingDays: 20, CustomerCount: 100, Sales: 600_000, CustomerSales: 600_000}.Values()
	to := pos.PeriodAggregate{OperatingDays: 20, CustomerCount: 120, Sales: 840_000, CustomerSales: 840_000}.Values()

	d := factor.Decompose("overall", from, to)
	if d.DeltaSales != 240_000 {
		t.Fatalf("delta sales = %f", d.DeltaSales)
	}
	// ΔP=20 at midpoint spend (6000+7000)/2, ΔS=1000 at midpoint
	// customers (100+120)/2.
	if d.CustomerContribution != 130_000 {
		t.Fatalf("customer contribution = %f, want 130000", d.CustomerContribution)
	}
	if d.SpendContribution != 110_000 {
		t.Fatalf("spend contribution = %f, want 110000", d.SpendContribution)
	}
	if d.ResidualSales != 0 {
		t.Fatalf("residual = %f, want 0", d.ResidualSales)
	}
	if err := factor.VerifyClosure(d); err != nil {
		t.Fatalf("closure failed: %v", err)
	}
}

func TestDecomposeResidualCoversZeroCustomerSales(t *testing.T) {
	from := pos.PeriodAggregate{OperatingDays: 20, CustomerCount: 100, Sales: 600_000, CustomerSales: 600_000}.Values()
	// 10000 of the target period's sales sit on tickets without a customer
	// count; the effects cannot attribute them.
	to := pos.PeriodAggregate{OperatingDays: 20, CustomerCount: 120, Sales: 850_000, CustomerSales: 840_000}.Values()

	d := factor.Decompose("overall", from, to)
	if d.DeltaSales != 250_000 {
		t.Fatalf("delta sales = %f", d.DeltaSales)
	}
	if d.CustomerContribution != 130_000 || d.SpendContribution != 110_000 {
		t.Fatalf("contributions wrong: %+v", d)
	}
	if d.ResidualSales != 10_000 {
		t.Fatalf("residual = %f, want 10000", d.ResidualSales)
	}
	if err := factor.VerifyClosure(d); err != nil {
		t.Fatalf("closure failed: %v", err)
	}
}

func TestDecomposeUndefinedWithoutCustomers(t *testing.T) {
	from := pos.PeriodAggregate{OperatingDays: 5, Sales: 50_000}.Values()
	to := pos.PeriodAggregate{OperatingDays: 5, CustomerCount: 80, Sales: 400_000}.Values()

	d := factor.Decompose("overall", from, to)
	if d.DeltaSales != 350_000 {
		t.Fatalf("delta sales = %f", d.DeltaSales)
	}
	if !math.IsNaN(d.CustomerContribution) || !math.IsNaN(d.SpendContribution) {
		t.Fatalf("contributions should be NaN: %+v", d)
	}
	if err := factor.VerifyClosure(d); err != nil {
		t.Fatalf("NaN contributions must pass closure: %v", err)
	}
}

func TestVerifyClosureFlagsGaps(t *testing.T) {
	d := pos.FactorDecomposition{
		Label:                "broken",
		DeltaSales:           100,
		CustomerContribution: 40,
		SpendContribution:    40,
	}
	if err := factor.VerifyClosure(d); err == nil {
		t.Fatal("expected closure error for 20 yen gap")
	}

	d.SpendContribution = 59.5
	if err := factor.VerifyClosure(d); err != nil {
		t.Fatalf("sub-tolerance gap should pass: %v", err)
	}
}
