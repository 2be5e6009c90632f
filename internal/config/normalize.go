package config

import (
	"fmt"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
)

// Normalizer validates raw requests against a product's rules and derives
// engine-ready PolicyParameters.
type Normalizer struct {
	Rules domain.ProductRules
}

// NewNormalizer creates a normalizer for the given product rules
func NewNormalizer(rules domain.ProductRules) *Normalizer {
	return &Normalizer{Rules: rules}
}

// Normalize validates req and returns the parameters for one illustration run.
// The first violated constraint is returned as *domain.ValidationError, or
// *domain.UnknownFundError for an unconfigured fund.
func (n *Normalizer) Normalize(req *domain.IllustrationRequest) (*domain.PolicyParameters, error) {
	r := &n.Rules

	if req.Age < r.MinEntryAge || req.Age > r.MaxEntryAge {
		return nil, invalid("age", "must be between %d and %d", r.MinEntryAge, r.MaxEntryAge)
	}

	gender, ok := domain.ParseGender(req.Gender)
	if !ok {
		return nil, invalid("gender", "must be %s or %s", domain.GenderMale, domain.GenderFemale)
	}

	if !req.AnnualPremium.IsPositive() {
		return nil, invalid("annual_premium", "must be positive")
	}
	if req.AnnualPremium.LessThan(r.MinAnnualPremium) {
		return nil, invalid("annual_premium", "must be at least %s", r.MinAnnualPremium.StringFixed(2))
	}

	if req.PolicyTerm < r.MinPolicyTerm || req.PolicyTerm > r.MaxPolicyTerm {
		return nil, invalid("policy_term", "must be between %d and %d years", r.MinPolicyTerm, r.MaxPolicyTerm)
	}
	if r.MaxMaturityAge > 0 && req.Age+req.PolicyTerm > r.MaxMaturityAge {
		return nil, invalid("policy_term", "age at maturity cannot exceed %d", r.MaxMaturityAge)
	}

	if req.PremiumPayingTerm < r.MinPremiumPayingTerm || req.PremiumPayingTerm > req.PolicyTerm {
		return nil, invalid("premium_paying_term", "must be between %d and the policy term (%d)", r.MinPremiumPayingTerm, req.PolicyTerm)
	}

	if req.SumAssured.IsNegative() {
		return nil, invalid("sum_assured", "cannot be negative")
	}

	fund, err := r.Fund(domain.FundID(req.Fund))
	if err != nil {
		return nil, err
	}

	topUp := decimal.Zero
	if req.IncludeTopUp {
		if req.TopUpPremium.IsNegative() {
			return nil, invalid("top_up_premium", "cannot be negative")
		}
		topUp = req.TopUpPremium
	}

	low := domain.DefaultReturnLow
	if req.Assumptions.ReturnLow != nil {
		low = *req.Assumptions.ReturnLow
	}
	high := domain.DefaultReturnHigh
	if req.Assumptions.ReturnHigh != nil {
		high = *req.Assumptions.ReturnHigh
	}
	if err := validateReturn("return_low", low); err != nil {
		return nil, err
	}
	if err := validateReturn("return_high", high); err != nil {
		return nil, err
	}
	if high.LessThan(low) {
		return nil, invalid("return_high", "must not be below return_low")
	}

	var stress *decimal.Decimal
	if req.Assumptions.StressReturn != nil {
		s := *req.Assumptions.StressReturn
		if err := validateReturn("stress_return", s); err != nil {
			return nil, err
		}
		stress = &s
	}

	resolution, ok := domain.ParseResolution(req.Assumptions.Resolution)
	if !ok {
		return nil, invalid("resolution", "must be %s or %s", domain.ResolutionAnnual, domain.ResolutionMonthly)
	}

	return &domain.PolicyParameters{
		AgeAtEntry:                     req.Age,
		Gender:                         gender,
		AnnualPremium:                  req.AnnualPremium,
		PolicyTerm:                     req.PolicyTerm,
		PremiumPayingTerm:              req.PremiumPayingTerm,
		SumAssured:                     req.SumAssured,
		Fund:                           fund.ID,
		FundManagementChargeAnnualRate: fund.FMCRate,
		TopUpPremium:                   topUp,
		AssumedReturnLow:               low,
		AssumedReturnHigh:              high,
		StressReturn:                   stress,
		Resolution:                     resolution,
		Rules:                          n.Rules,
	}, nil
}

func validateReturn(field string, rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.NewFromInt(-1)) || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return invalid(field, "must be between -100%% and 100%%")
	}
	return nil
}

func invalid(field, format string, args ...any) *domain.ValidationError {
	return &domain.ValidationError{Field: field, Constraint: fmt.Sprintf(format, args...)}
}
