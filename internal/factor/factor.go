// Package factor splits a sales delta between two periods into a
// customer-count effect and a spend-per-customer effect using the midpoint
// method: Δ(P·S) = ΔP·(S₀+S₁)/2 + ΔS·(P₀+P₁)/2, exact up to arithmetic.
package factor

import (
	"fmt"
	"math"

	"posreport/internal/pos"
)

// ClosureToleranceYen bounds the acceptable gap between the two
// contributions and the observed sales delta. Anything larger is a bug,
// not rounding.
const ClosureToleranceYen = 1.0

// Decompose attributes the from→to sales delta. The two effects reconstruct
// the customer-attributable part of the delta exactly; sales on tickets
// without a recorded customer count land in ResidualSales, since no
// per-customer effect can explain them. Both sides need a positive customer
// count; otherwise spend-per-customer is undefined and the decomposition
// comes back NaN-valued rather than failing.
func Decompose(label string, from, to pos.KPIValues) pos.FactorDecomposition {
	d := pos.FactorDecomposition{
		Label:      label,
		DeltaSales: to.Sales - from.Sales,
	}
	if from.CustomerCount <= 0 || to.CustomerCount <= 0 ||
		math.IsNaN(from.SpendPerCustomer) || math.IsNaN(to.SpendPerCustomer) {
		d.CustomerContribution = math.NaN()
		d.SpendContribution = math.NaN()
		d.ResidualSales = math.NaN()
		return d
	}
	d.CustomerContribution = (to.CustomerCount - from.CustomerCount) * (from.SpendPerCustomer + to.SpendPerCustomer) / 2
	d.SpendContribution = (to.SpendPerCustomer - from.SpendPerCustomer) * (from.CustomerCount + to.CustomerCount) / 2
	d.ResidualSales = d.DeltaSales - (to.CustomerSales - from.CustomerSales)
	return d
}

// VerifyClosure checks that the contributions plus the residual sum back to
// the sales delta within tolerance. NaN contributions (undefined spend)
// pass trivially.
func VerifyClosure(d pos.FactorDecomposition) error {
	if math.IsNaN(d.CustomerContribution) || math.IsNaN(d.SpendContribution) {
		return nil
	}
	gap := math.Abs(d.CustomerContribution + d.SpendContribution + d.ResidualSales - d.DeltaSales)
	if gap > ClosureToleranceYen {
		return fmt.Errorf("decomposition %q does not close: |%.2f + %.2f + %.2f - %.2f| = %.2f yen", d.Label, d.CustomerContribution, d.SpendContribution, d.ResidualSales, d.DeltaSales, gap)
	}
	return nil
}
