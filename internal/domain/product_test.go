package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRules_AllocationRate(t *testing.T) {
	rules := DefaultProductRules()

	tests := []struct {
		year int
		want string
	}{
		{1, "0.06"},
		{2, "0.04"},
		{5, "0.04"},
		{6, "0"},
		{30, "0"},
	}
	for _, tt := range tests {
		assert.True(t, rules.AllocationRate(tt.year).Equal(decimal.RequireFromString(tt.want)), "year %d", tt.year)
	}

	rules.AllocationChargeYears = 0
	for _, year := range []int{1, 2, 10} {
		assert.True(t, rules.AllocationRate(year).IsZero(), "year %d with no allocation charge years", year)
	}

	rules.AllocationChargeYears = 1
	assert.True(t, rules.AllocationRate(1).Equal(decimal.RequireFromString("0.06")))
	assert.True(t, rules.AllocationRate(2).IsZero())
}

func TestProductRules_AdminRate(t *testing.T) {
	rules := DefaultProductRules()
	assert.True(t, rules.AdminRate(1).Equal(decimal.NewFromFloat(0.0165)))
	assert.True(t, rules.AdminRate(5).Equal(decimal.NewFromFloat(0.0165)))
	assert.True(t, rules.AdminRate(6).IsZero())
}

func TestProductRules_Additions(t *testing.T) {
	rules := DefaultProductRules()

	assert.False(t, rules.AdditionsApply(5))
	assert.True(t, rules.AdditionsApply(6))

	assert.False(t, rules.LoyaltyEligible(5))
	assert.True(t, rules.LoyaltyEligible(6))
}

func TestProductRules_Booster(t *testing.T) {
	rules := DefaultProductRules()

	tests := []struct {
		year int
		want string
	}{
		{5, "0"},
		{9, "0"},
		{10, "0.0275"},
		{11, "0"},
		{15, "0.0275"},
		{20, "0.035"},
		{25, "0.035"},
		{30, "0.035"},
		{31, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want != "0", rules.IsBoosterYear(tt.year), "year %d", tt.year)
		assert.True(t, rules.BoosterRate(tt.year).Equal(decimal.RequireFromString(tt.want)), "year %d", tt.year)
	}

	rules.BoosterInterval = 0
	assert.False(t, rules.IsBoosterYear(10), "zero interval disables boosters")
}

func TestProductRules_Fund(t *testing.T) {
	rules := DefaultProductRules()

	fund, err := rules.Fund(FundMoneyMarket)
	require.NoError(t, err)
	assert.True(t, fund.FMCRate.Equal(decimal.NewFromFloat(0.0075)))

	_, err = rules.Fund("gold")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFund))
	assert.Equal(t, []FundID{FundBalanced, FundBond, FundLargeCapEquity, FundMidCapEquity, FundMoneyMarket}, rules.FundIDs())
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		in   string
		want Gender
		ok   bool
	}{
		{"Male", GenderMale, true},
		{"female", GenderFemale, true},
		{" M ", GenderMale, true},
		{"f", GenderFemale, true},
		{"", "", false},
		{"other", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseGender(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in   string
		want Resolution
		ok   bool
	}{
		{"", ResolutionMonthly, true},
		{"annual", ResolutionAnnual, true},
		{"Yearly", ResolutionAnnual, true},
		{"MONTHLY", ResolutionMonthly, true},
		{"weekly", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseResolution(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.Equal(t, 1, ResolutionAnnual.PeriodsPerYear())
	assert.Equal(t, 12, ResolutionMonthly.PeriodsPerYear())
	assert.Equal(t, 0, Resolution("weekly").PeriodsPerYear())
}

func TestReturnScenario_Label(t *testing.T) {
	assert.Equal(t, "4%", ReturnScenario{Name: ScenarioLow, AnnualReturn: decimal.NewFromFloat(0.04)}.Label())
	assert.Equal(t, "7.5%", ReturnScenario{Name: ScenarioHigh, AnnualReturn: decimal.NewFromFloat(0.075)}.Label())
}

func TestPolicyParameters_Derived(t *testing.T) {
	stress := decimal.Zero
	p := &PolicyParameters{
		AnnualPremium:     decimal.NewFromInt(50000),
		PolicyTerm:        15,
		PremiumPayingTerm: 7,
		TopUpPremium:      decimal.NewFromInt(10000),
		AssumedReturnLow:  decimal.NewFromFloat(0.04),
		AssumedReturnHigh: decimal.NewFromFloat(0.08),
		StressReturn:      &stress,
		Resolution:        ResolutionMonthly,
	}

	assert.Equal(t, 12, p.PeriodsPerYear())
	assert.Equal(t, 180, p.TotalPeriods())
	assert.True(t, p.TotalPremiums().Equal(decimal.NewFromInt(360000)))

	scenarios := p.Scenarios()
	require.Len(t, scenarios, 3)
	assert.Equal(t, ScenarioStress, scenarios[2].Name)
	assert.Contains(t, p.String(), "term=15 ppt=7")
}
