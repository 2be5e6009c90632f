package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Gender of the life assured. Carried for a future mortality-table lookup;
// the flat-rate charge formulas do not consume it.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ParseGender accepts the canonical spelling in any case plus M/F shorthands.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, true
	case "female", "f":
		return GenderFemale, true
	}
	return "", false
}

// Resolution selects how many simulation steps make up one policy year.
type Resolution string

const (
	ResolutionAnnual  Resolution = "annual"
	ResolutionMonthly Resolution = "monthly"
)

// DefaultResolution is used when an input leaves the resolution blank.
const DefaultResolution = ResolutionMonthly

// PeriodsPerYear returns 1 for annual and 12 for monthly resolution, 0 otherwise.
func (r Resolution) PeriodsPerYear() int {
	switch r {
	case ResolutionAnnual:
		return 1
	case ResolutionMonthly:
		return 12
	}
	return 0
}

// ParseResolution resolves user input; blank maps to DefaultResolution.
func ParseResolution(s string) (Resolution, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultResolution, true
	case "annual", "yearly", "year":
		return ResolutionAnnual, true
	case "monthly", "month":
		return ResolutionMonthly, true
	}
	return "", false
}

// Scenario names used for the two regulator-style projections and the
// optional zero-growth stress case.
const (
	ScenarioLow    = "low"
	ScenarioHigh   = "high"
	ScenarioStress = "stress"
)

// ReturnScenario is one assumed-return projection run.
type ReturnScenario struct {
	Name         string          `json:"name"`
	AnnualReturn decimal.Decimal `json:"annualReturn"`
}

// Label renders the assumed return the way BI tables head their columns, e.g. "4%".
func (s ReturnScenario) Label() string {
	return s.AnnualReturn.Mul(decimal.NewFromInt(100)).String() + "%"
}

// Assumptions are the optional projection settings of an illustration request.
// Nil rates fall back to the product defaults.
type Assumptions struct {
	ReturnLow    *decimal.Decimal `yaml:"return_low,omitempty" json:"returnLow,omitempty"`
	ReturnHigh   *decimal.Decimal `yaml:"return_high,omitempty" json:"returnHigh,omitempty"`
	StressReturn *decimal.Decimal `yaml:"stress_return,omitempty" json:"stressReturn,omitempty"`
	Resolution   string           `yaml:"resolution,omitempty" json:"resolution,omitempty"`
}

// IllustrationRequest is the raw, unvalidated input of one illustration run.
type IllustrationRequest struct {
	Age               int             `yaml:"age" json:"age"`
	Gender            string          `yaml:"gender" json:"gender"`
	AnnualPremium     decimal.Decimal `yaml:"annual_premium" json:"annualPremium"`
	SumAssured        decimal.Decimal `yaml:"sum_assured" json:"sumAssured"`
	PolicyTerm        int             `yaml:"policy_term" json:"policyTerm"`
	PremiumPayingTerm int             `yaml:"premium_paying_term" json:"premiumPayingTerm"`
	Fund              string          `yaml:"fund" json:"fund"`
	IncludeTopUp      bool            `yaml:"include_top_up" json:"includeTopUp"`
	TopUpPremium      decimal.Decimal `yaml:"top_up_premium" json:"topUpPremium"`
	Assumptions       Assumptions     `yaml:"assumptions" json:"assumptions"`
}

// PolicyParameters is the validated, engine-ready form of a request.
// It is built once per run by the normalizer and never mutated afterwards.
type PolicyParameters struct {
	AgeAtEntry                     int              `json:"ageAtEntry"`
	Gender                         Gender           `json:"gender"`
	AnnualPremium                  decimal.Decimal  `json:"annualPremium"`
	PolicyTerm                     int              `json:"policyTerm"`
	PremiumPayingTerm              int              `json:"premiumPayingTerm"`
	SumAssured                     decimal.Decimal  `json:"sumAssured"`
	Fund                           FundID           `json:"fund"`
	FundManagementChargeAnnualRate decimal.Decimal  `json:"fundManagementChargeAnnualRate"`
	TopUpPremium                   decimal.Decimal  `json:"topUpPremium"`
	AssumedReturnLow               decimal.Decimal  `json:"assumedReturnLow"`
	AssumedReturnHigh              decimal.Decimal  `json:"assumedReturnHigh"`
	StressReturn                   *decimal.Decimal `json:"stressReturn,omitempty"`
	Resolution                     Resolution       `json:"resolution"`
	Rules                          ProductRules     `json:"-"`
}

// PeriodsPerYear is the number of simulation steps per policy year.
func (p *PolicyParameters) PeriodsPerYear() int {
	return p.Resolution.PeriodsPerYear()
}

// TotalPeriods is the number of simulation steps until maturity.
func (p *PolicyParameters) TotalPeriods() int {
	return p.PolicyTerm * p.PeriodsPerYear()
}

// Scenarios lists the projections to run: low, high and, when configured, stress.
func (p *PolicyParameters) Scenarios() []ReturnScenario {
	scenarios := []ReturnScenario{
		{Name: ScenarioLow, AnnualReturn: p.AssumedReturnLow},
		{Name: ScenarioHigh, AnnualReturn: p.AssumedReturnHigh},
	}
	if p.StressReturn != nil {
		scenarios = append(scenarios, ReturnScenario{Name: ScenarioStress, AnnualReturn: *p.StressReturn})
	}
	return scenarios
}

// TotalPremiums is the sum of regular premiums over the paying term plus any top-up.
func (p *PolicyParameters) TotalPremiums() decimal.Decimal {
	return p.AnnualPremium.Mul(decimal.NewFromInt(int64(p.PremiumPayingTerm))).Add(p.TopUpPremium)
}

// String is a one-line description used in debug logs.
func (p *PolicyParameters) String() string {
	return fmt.Sprintf("age=%d premium=%s term=%d ppt=%d sa=%s fund=%s fmc=%s resolution=%s",
		p.AgeAtEntry, p.AnnualPremium.StringFixed(2), p.PolicyTerm, p.PremiumPayingTerm,
		p.SumAssured.StringFixed(2), p.Fund, p.FundManagementChargeAnnualRate.String(), p.Resolution)
}
