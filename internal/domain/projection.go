package domain

import (
	"github.com/shopspring/decimal"
)

// PeriodRecord is the engine trace of a single simulation period for one scenario.
type PeriodRecord struct {
	Scenario    string `json:"scenario"`
	PeriodIndex int    `json:"periodIndex"`
	PolicyYear  int    `json:"policyYear"`

	PremiumReceived    decimal.Decimal `json:"premiumReceived"`
	TopUpReceived      decimal.Decimal `json:"topUpReceived"`
	AllocationCharge   decimal.Decimal `json:"allocationCharge"`
	AdminCharge        decimal.Decimal `json:"adminCharge"`
	Growth             decimal.Decimal `json:"growth"`
	FundManagementDrag decimal.Decimal `json:"fundManagementDrag"`
	MortalityCharge    decimal.Decimal `json:"mortalityCharge"`
	Tax                decimal.Decimal `json:"tax"`

	GuaranteedAddition decimal.Decimal `json:"guaranteedAddition"`
	LoyaltyAddition    decimal.Decimal `json:"loyaltyAddition"`
	BoosterAddition    decimal.Decimal `json:"boosterAddition"`

	BalanceAfterPeriod decimal.Decimal `json:"balanceAfterPeriod"`
}

// Rounded returns a copy with every amount rounded to places decimals.
func (p PeriodRecord) Rounded(places int32) PeriodRecord {
	r := p
	for _, f := range []*decimal.Decimal{
		&r.PremiumReceived, &r.TopUpReceived, &r.AllocationCharge, &r.AdminCharge, &r.Growth,
		&r.FundManagementDrag, &r.MortalityCharge, &r.Tax, &r.GuaranteedAddition,
		&r.LoyaltyAddition, &r.BoosterAddition, &r.BalanceAfterPeriod,
	} {
		*f = f.Round(places)
	}
	return r
}

// YearRow is one policy year of the benefit illustration for one scenario.
type YearRow struct {
	PolicyYear int `json:"policyYear"`
	Age        int `json:"age"`

	PremiumPaid          decimal.Decimal `json:"premiumPaid"`
	TopUpPaid            decimal.Decimal `json:"topUpPaid"`
	AllocationCharge     decimal.Decimal `json:"allocationCharge"`
	AdminCharge          decimal.Decimal `json:"adminCharge"`
	MortalityCharge      decimal.Decimal `json:"mortalityCharge"`
	TotalCharges         decimal.Decimal `json:"totalCharges"` // allocation + admin + mortality
	Tax                  decimal.Decimal `json:"tax"`
	FundManagementCharge decimal.Decimal `json:"fundManagementCharge"`

	GuaranteedAddition decimal.Decimal `json:"guaranteedAddition"`
	LoyaltyAddition    decimal.Decimal `json:"loyaltyAddition"`
	BoosterAddition    decimal.Decimal `json:"boosterAddition"`

	FundValue      decimal.Decimal `json:"fundValue"`
	SurrenderValue decimal.Decimal `json:"surrenderValue"`
	DeathBenefit   decimal.Decimal `json:"deathBenefit"`
}

// TotalAdditions is the sum of all additions credited in the year.
func (y YearRow) TotalAdditions() decimal.Decimal {
	return y.GuaranteedAddition.Add(y.LoyaltyAddition).Add(y.BoosterAddition)
}

// Rounded returns a copy with every amount rounded to places decimals.
func (y YearRow) Rounded(places int32) YearRow {
	r := y
	for _, f := range []*decimal.Decimal{
		&r.PremiumPaid, &r.TopUpPaid, &r.AllocationCharge, &r.AdminCharge, &r.MortalityCharge,
		&r.TotalCharges, &r.Tax, &r.FundManagementCharge, &r.GuaranteedAddition,
		&r.LoyaltyAddition, &r.BoosterAddition, &r.FundValue, &r.SurrenderValue, &r.DeathBenefit,
	} {
		*f = f.Round(places)
	}
	return r
}

// ScenarioProjection holds the full trace and year rows of one scenario.
type ScenarioProjection struct {
	Scenario      ReturnScenario  `json:"scenario"`
	Periods       []PeriodRecord  `json:"periods,omitempty"`
	Years         []YearRow       `json:"years"`
	MaturityValue decimal.Decimal `json:"maturityValue"`
}

// TotalCharges sums allocation, admin and mortality charges over the term.
func (s *ScenarioProjection) TotalCharges() decimal.Decimal {
	total := decimal.Zero
	for _, y := range s.Years {
		total = total.Add(y.TotalCharges)
	}
	return total
}

// TotalTax sums tax over the term.
func (s *ScenarioProjection) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, y := range s.Years {
		total = total.Add(y.Tax)
	}
	return total
}

// TotalFundManagementCharges sums the FMC drag over the term.
func (s *ScenarioProjection) TotalFundManagementCharges() decimal.Decimal {
	total := decimal.Zero
	for _, y := range s.Years {
		total = total.Add(y.FundManagementCharge)
	}
	return total
}

// TotalAdditions sums every addition credited over the term.
func (s *ScenarioProjection) TotalAdditions() decimal.Decimal {
	total := decimal.Zero
	for _, y := range s.Years {
		total = total.Add(y.TotalAdditions())
	}
	return total
}

// IllustrationSummary is the headline record handed to renderers.
type IllustrationSummary struct {
	TotalPremiumsPaid decimal.Decimal `json:"totalPremiumsPaid"`
	MaturityValueLow  decimal.Decimal `json:"maturityValueLow"`
	MaturityValueHigh decimal.Decimal `json:"maturityValueHigh"`
}

// Illustration is the complete output of one run.
type Illustration struct {
	Parameters PolicyParameters     `json:"parameters"`
	Scenarios  []ScenarioProjection `json:"scenarios"`
	Summary    IllustrationSummary  `json:"summary"`
}

// Scenario returns the projection with the given name, or nil.
func (il *Illustration) Scenario(name string) *ScenarioProjection {
	for i := range il.Scenarios {
		if il.Scenarios[i].Scenario.Name == name {
			return &il.Scenarios[i]
		}
	}
	return nil
}

// Rounded returns a copy suitable for export: amounts rounded to places and
// the period trace dropped unless keepPeriods is set.
func (il *Illustration) Rounded(places int32, keepPeriods bool) *Illustration {
	out := &Illustration{
		Parameters: il.Parameters,
		Summary: IllustrationSummary{
			TotalPremiumsPaid: il.Summary.TotalPremiumsPaid.Round(places),
			MaturityValueLow:  il.Summary.MaturityValueLow.Round(places),
			MaturityValueHigh: il.Summary.MaturityValueHigh.Round(places),
		},
		Scenarios: make([]ScenarioProjection, len(il.Scenarios)),
	}
	for i, sc := range il.Scenarios {
		years := make([]YearRow, len(sc.Years))
		for j, y := range sc.Years {
			years[j] = y.Rounded(places)
		}
		rounded := ScenarioProjection{
			Scenario:      sc.Scenario,
			Years:         years,
			MaturityValue: sc.MaturityValue.Round(places),
		}
		if keepPeriods {
			rounded.Periods = make([]PeriodRecord, len(sc.Periods))
			for j, p := range sc.Periods {
				rounded.Periods[j] = p.Rounded(places)
			}
		}
		out.Scenarios[i] = rounded
	}
	return out
}
