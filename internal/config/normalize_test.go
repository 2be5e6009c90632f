package config

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *domain.IllustrationRequest {
	return &domain.IllustrationRequest{
		Age:               30,
		Gender:            "Male",
		AnnualPremium:     decimal.NewFromInt(100000),
		SumAssured:        decimal.NewFromInt(1000000),
		PolicyTerm:        20,
		PremiumPayingTerm: 10,
		Fund:              string(domain.FundLargeCapEquity),
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNormalize_Defaults(t *testing.T) {
	n := NewNormalizer(domain.DefaultProductRules())

	params, err := n.Normalize(validRequest())
	require.NoError(t, err)

	assert.Equal(t, 30, params.AgeAtEntry)
	assert.Equal(t, domain.GenderMale, params.Gender)
	assert.Equal(t, domain.FundLargeCapEquity, params.Fund)
	assert.True(t, params.FundManagementChargeAnnualRate.Equal(decimal.NewFromFloat(0.0135)))
	assert.True(t, params.AssumedReturnLow.Equal(domain.DefaultReturnLow))
	assert.True(t, params.AssumedReturnHigh.Equal(domain.DefaultReturnHigh))
	assert.Nil(t, params.StressReturn)
	assert.Equal(t, domain.ResolutionMonthly, params.Resolution)
	assert.True(t, params.TopUpPremium.IsZero())
	assert.Equal(t, 240, params.TotalPeriods())
	assert.Len(t, params.Scenarios(), 2)
}

func TestNormalize_Overrides(t *testing.T) {
	req := validRequest()
	req.Gender = "f"
	req.Fund = string(domain.FundBond)
	req.IncludeTopUp = true
	req.TopUpPremium = decimal.NewFromInt(20000)
	req.Assumptions = domain.Assumptions{
		ReturnLow:    decimalPtr("0.05"),
		ReturnHigh:   decimalPtr("0.09"),
		StressReturn: decimalPtr("0"),
		Resolution:   "Annual",
	}

	params, err := NewNormalizer(domain.DefaultProductRules()).Normalize(req)
	require.NoError(t, err)

	assert.Equal(t, domain.GenderFemale, params.Gender)
	assert.True(t, params.FundManagementChargeAnnualRate.Equal(decimal.NewFromFloat(0.01)))
	assert.True(t, params.TopUpPremium.Equal(decimal.NewFromInt(20000)))
	assert.True(t, params.AssumedReturnLow.Equal(decimal.NewFromFloat(0.05)))
	require.NotNil(t, params.StressReturn)
	assert.Equal(t, domain.ResolutionAnnual, params.Resolution)
	assert.Len(t, params.Scenarios(), 3)
	assert.True(t, params.TotalPremiums().Equal(decimal.NewFromInt(1020000)))
}

func TestNormalize_TopUpIgnoredWhenNotIncluded(t *testing.T) {
	req := validRequest()
	req.TopUpPremium = decimal.NewFromInt(50000)

	params, err := NewNormalizer(domain.DefaultProductRules()).Normalize(req)
	require.NoError(t, err)
	assert.True(t, params.TopUpPremium.IsZero())
}

func TestNormalize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *domain.IllustrationRequest)
		wantField string
	}{
		{"age below minimum", func(r *domain.IllustrationRequest) { r.Age = -1 }, "age"},
		{"age above maximum", func(r *domain.IllustrationRequest) { r.Age = 66 }, "age"},
		{"unknown gender", func(r *domain.IllustrationRequest) { r.Gender = "X" }, "gender"},
		{"zero premium", func(r *domain.IllustrationRequest) { r.AnnualPremium = decimal.Zero }, "annual_premium"},
		{"premium below minimum", func(r *domain.IllustrationRequest) { r.AnnualPremium = decimal.NewFromInt(5000) }, "annual_premium"},
		{"term too short", func(r *domain.IllustrationRequest) { r.PolicyTerm = 5; r.PremiumPayingTerm = 5 }, "policy_term"},
		{"term too long", func(r *domain.IllustrationRequest) { r.PolicyTerm = 45 }, "policy_term"},
		{"maturity age exceeded", func(r *domain.IllustrationRequest) { r.Age = 60; r.PolicyTerm = 30 }, "policy_term"},
		{"paying term too short", func(r *domain.IllustrationRequest) { r.PremiumPayingTerm = 3 }, "premium_paying_term"},
		{"paying term beyond policy term", func(r *domain.IllustrationRequest) { r.PremiumPayingTerm = 25 }, "premium_paying_term"},
		{"negative sum assured", func(r *domain.IllustrationRequest) { r.SumAssured = decimal.NewFromInt(-1) }, "sum_assured"},
		{"negative top-up", func(r *domain.IllustrationRequest) {
			r.IncludeTopUp = true
			r.TopUpPremium = decimal.NewFromInt(-100)
		}, "top_up_premium"},
		{"low return at -100%", func(r *domain.IllustrationRequest) { r.Assumptions.ReturnLow = decimalPtr("-1") }, "return_low"},
		{"high return at 100%", func(r *domain.IllustrationRequest) { r.Assumptions.ReturnHigh = decimalPtr("1") }, "return_high"},
		{"high below low", func(r *domain.IllustrationRequest) {
			r.Assumptions.ReturnLow = decimalPtr("0.08")
			r.Assumptions.ReturnHigh = decimalPtr("0.04")
		}, "return_high"},
		{"stress return out of range", func(r *domain.IllustrationRequest) { r.Assumptions.StressReturn = decimalPtr("-2") }, "stress_return"},
		{"bad resolution", func(r *domain.IllustrationRequest) { r.Assumptions.Resolution = "weekly" }, "resolution"},
	}

	n := NewNormalizer(domain.DefaultProductRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			params, err := n.Normalize(req)
			assert.Nil(t, params)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.True(t, domain.IsClientError(err))
		})
	}
}

func TestNormalize_UnknownFund(t *testing.T) {
	req := validRequest()
	req.Fund = "crypto"

	params, err := NewNormalizer(domain.DefaultProductRules()).Normalize(req)
	assert.Nil(t, params)
	require.Error(t, err)

	var ferr *domain.UnknownFundError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "crypto", ferr.Fund)
	assert.Len(t, ferr.Valid, 5)
	assert.ErrorIs(t, err, domain.ErrUnknownFund)
	assert.Contains(t, err.Error(), "large_cap_equity")
}

func TestNormalize_CustomRules(t *testing.T) {
	rules := domain.DefaultProductRules()
	rules.MinAnnualPremium = decimal.NewFromInt(500000)

	_, err := NewNormalizer(rules).Normalize(validRequest())
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "annual_premium", verr.Field)
	assert.Contains(t, verr.Constraint, "500000.00")
}
