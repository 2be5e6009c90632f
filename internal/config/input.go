package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of illustration input and product rule files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an illustration request from a YAML (or JSON) file.
// Range checks are left to the Normalizer so that every entry point reports
// the same ValidationError for the same field.
func (ip *InputParser) LoadFromFile(filename string) (*domain.IllustrationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes an illustration request from YAML bytes.
func (ip *InputParser) Parse(data []byte) (*domain.IllustrationRequest, error) {
	var req domain.IllustrationRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &req, nil
}

// LoadProductRules loads product rules from a YAML file. Fields absent from
// the file keep their default values.
func (ip *InputParser) LoadProductRules(filename string) (*domain.ProductRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read product file %s: %w", filename, err)
	}

	rules := domain.DefaultProductRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse product YAML: %w", err)
	}

	if err := ip.ValidateProductRules(&rules); err != nil {
		return nil, fmt.Errorf("product rules validation failed: %w", err)
	}
	return &rules, nil
}

// ValidateProductRules checks the rules are internally consistent
func (ip *InputParser) ValidateProductRules(rules *domain.ProductRules) error {
	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"allocation_rate_first_year", rules.AllocationRateFirstYear},
		{"allocation_rate_renewal", rules.AllocationRateRenewal},
		{"top_up_allocation_rate", rules.TopUpAllocationRate},
		{"admin_charge_rate", rules.AdminChargeRate},
		{"mortality_rate", rules.MortalityRate},
		{"tax_rate", rules.TaxRate},
		{"guaranteed_addition_rate", rules.GuaranteedAdditionRate},
		{"loyalty_addition_rate", rules.LoyaltyAdditionRate},
	}
	for _, r := range rates {
		if err := validateFraction(r.name, r.rate); err != nil {
			return err
		}
	}

	if rules.MinAnnualPremium.LessThan(decimal.Zero) {
		return fmt.Errorf("min_annual_premium cannot be negative")
	}
	if rules.AdminChargeCapAnnual.LessThan(decimal.Zero) {
		return fmt.Errorf("admin_charge_cap_annual cannot be negative")
	}
	if rules.MinPolicyTerm <= 0 || rules.MaxPolicyTerm < rules.MinPolicyTerm {
		return fmt.Errorf("policy term bounds must satisfy 0 < min <= max")
	}
	if rules.MinPremiumPayingTerm <= 0 || rules.MinPremiumPayingTerm > rules.MinPolicyTerm {
		return fmt.Errorf("min_premium_paying_term must be between 1 and min_policy_term")
	}
	if rules.MinEntryAge < 0 || rules.MaxEntryAge < rules.MinEntryAge {
		return fmt.Errorf("entry age bounds must satisfy 0 <= min <= max")
	}
	if rules.AdditionWindowMonths <= 0 || rules.BoosterWindowMonths <= 0 {
		return fmt.Errorf("addition windows must be positive")
	}
	if rules.AdditionWindowMonths%12 != 0 || rules.BoosterWindowMonths%12 != 0 {
		return fmt.Errorf("addition windows must be whole years (multiples of 12 months)")
	}

	lastYear := 0
	for i, tier := range rules.BoosterTiers {
		if tier.FromYear <= lastYear {
			return fmt.Errorf("booster tier %d: from_year must be ascending", i)
		}
		if err := validateFraction(fmt.Sprintf("booster tier %d rate", i), tier.Rate); err != nil {
			return err
		}
		lastYear = tier.FromYear
	}

	if len(rules.Funds) == 0 {
		return fmt.Errorf("at least one fund is required")
	}
	seen := make(map[domain.FundID]bool, len(rules.Funds))
	for _, f := range rules.Funds {
		if f.ID == "" {
			return fmt.Errorf("fund id is required")
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate fund id %s", f.ID)
		}
		seen[f.ID] = true
		if err := validateFraction(fmt.Sprintf("fund %s fmc_rate", f.ID), f.FMCRate); err != nil {
			return err
		}
	}

	return nil
}

func validateFraction(name string, rate decimal.Decimal) error {
	if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}
