package compare

import (
	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the headline metrics of one fund's illustration
type ComparisonResult struct {
	Fund         domain.FundID        `json:"fund"`
	FundName     string               `json:"fundName"`
	FMCRate      decimal.Decimal      `json:"fmcRate"`
	Illustration *domain.Illustration `json:"-"`

	// Key Metrics
	MaturityValueLow  decimal.Decimal `json:"maturityValueLow"`
	MaturityValueHigh decimal.Decimal `json:"maturityValueHigh"`
	LifetimeCharges   decimal.Decimal `json:"lifetimeCharges"` // low scenario
	LifetimeTax       decimal.Decimal `json:"lifetimeTax"`     // low scenario
	LifetimeFMC       decimal.Decimal `json:"lifetimeFmc"`     // low scenario
	LifetimeAdditions decimal.Decimal `json:"lifetimeAdditions"`

	// Comparison to Base
	MaturityDiffLow  decimal.Decimal `json:"maturityDiffLow"`
	MaturityDiffHigh decimal.Decimal `json:"maturityDiffHigh"`
	MaturityPctLow   decimal.Decimal `json:"maturityPctLow"`
	FMCDiffFromBase  decimal.Decimal `json:"fmcDiffFromBase"`
}

// ComparisonSet represents a collection of fund comparisons
type ComparisonSet struct {
	BaseFund           domain.FundID      `json:"baseFund"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath,omitempty"`
}

// All returns the base result followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// Rounded returns a copy with every money metric rounded to places decimals.
// Rates are left at full precision.
func (r ComparisonResult) Rounded(places int32) ComparisonResult {
	out := r
	for _, f := range []*decimal.Decimal{
		&out.MaturityValueLow, &out.MaturityValueHigh, &out.LifetimeCharges, &out.LifetimeTax,
		&out.LifetimeFMC, &out.LifetimeAdditions, &out.MaturityDiffLow, &out.MaturityDiffHigh,
		&out.MaturityPctLow,
	} {
		*f = f.Round(places)
	}
	return out
}

// Rounded returns a copy of the set ready for export.
func (cs *ComparisonSet) Rounded(places int32) *ComparisonSet {
	out := *cs
	if cs.BaseResult != nil {
		base := cs.BaseResult.Rounded(places)
		out.BaseResult = &base
	}
	out.AlternativeResults = make([]ComparisonResult, len(cs.AlternativeResults))
	for i, alt := range cs.AlternativeResults {
		out.AlternativeResults[i] = alt.Rounded(places)
	}
	return &out
}

// MetricsCalculator extracts key metrics from illustrations
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a fund's illustration
func (mc *MetricsCalculator) CalculateMetrics(fund domain.FundConfig, il *domain.Illustration) ComparisonResult {
	result := ComparisonResult{
		Fund:              fund.ID,
		FundName:          fund.Name,
		FMCRate:           fund.FMCRate,
		Illustration:      il,
		MaturityValueLow:  il.Summary.MaturityValueLow,
		MaturityValueHigh: il.Summary.MaturityValueHigh,
	}

	if low := il.Scenario(domain.ScenarioLow); low != nil {
		result.LifetimeCharges = low.TotalCharges()
		result.LifetimeTax = low.TotalTax()
		result.LifetimeFMC = low.TotalFundManagementCharges()
		result.LifetimeAdditions = low.TotalAdditions()
	}

	return result
}

// CalculateComparison computes comparison metrics between a fund and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.MaturityDiffLow = alt.MaturityValueLow.Sub(base.MaturityValueLow)
	alt.MaturityDiffHigh = alt.MaturityValueHigh.Sub(base.MaturityValueHigh)

	if !base.MaturityValueLow.IsZero() {
		alt.MaturityPctLow = alt.MaturityDiffLow.
			Div(base.MaturityValueLow).
			Mul(decimal.NewFromInt(100))
	}

	alt.FMCDiffFromBase = alt.FMCRate.Sub(base.FMCRate)
	return alt
}
