package output

import (
	"fmt"

	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// IllustrationAssumptions lists the modeling assumptions rendered with an
// illustration, derived from the product rules the run used.
func IllustrationAssumptions(il *domain.Illustration) []string {
	p := &il.Parameters
	r := &p.Rules

	out := []string{
		fmt.Sprintf("Assumed investment returns: %s and %s per annum, compounded per %s period",
			FormatPercentage(p.AssumedReturnLow), FormatPercentage(p.AssumedReturnHigh), p.Resolution),
		fmt.Sprintf("Fund management charge: %s per annum of fund value (%s)",
			FormatPercentage(p.FundManagementChargeAnnualRate), p.Fund),
		fmt.Sprintf("Premium allocation charge: %s in year 1, %s in years 2-%d",
			FormatPercentage(r.AllocationRateFirstYear), FormatPercentage(r.AllocationRateRenewal), r.AllocationChargeYears),
		fmt.Sprintf("Policy administration charge: %s of annual premium for %d years",
			FormatPercentage(r.AdminChargeRate), r.AdminChargeYears),
		fmt.Sprintf("Mortality charge: %s per annum of sum at risk", FormatPercentage(r.MortalityRate)),
		fmt.Sprintf("GST: %s on mortality, allocation and administration charges", FormatPercentage(r.TaxRate)),
		fmt.Sprintf("Guaranteed additions of %s from year %d; loyalty additions of %s when paying term exceeds %d years",
			FormatPercentage(r.GuaranteedAdditionRate), r.AdditionStartYear,
			FormatPercentage(r.LoyaltyAdditionRate), r.LoyaltyMinPayingTerm),
	}
	if p.StressReturn != nil {
		out = append(out, fmt.Sprintf("Stress scenario return: %s per annum", FormatPercentage(*p.StressReturn)))
	}
	if r.AdminChargeCapAnnual.IsPositive() {
		out = append(out, fmt.Sprintf("Administration charge capped at %s per year", FormatAmount(r.AdminChargeCapAnnual)))
	}
	return out
}
