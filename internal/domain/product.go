package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FundID identifies one of the product's unit funds.
type FundID string

const (
	FundLargeCapEquity FundID = "large_cap_equity"
	FundMidCapEquity   FundID = "mid_cap_equity"
	FundBalanced       FundID = "balanced"
	FundBond           FundID = "bond"
	FundMoneyMarket    FundID = "money_market"
)

// FundConfig is the published configuration of a unit fund.
type FundConfig struct {
	ID      FundID          `yaml:"id" json:"id"`
	Name    string          `yaml:"name" json:"name"`
	FMCRate decimal.Decimal `yaml:"fmc_rate" json:"fmcRate"`
}

// BoosterTier sets the booster addition rate from a policy year onward.
type BoosterTier struct {
	FromYear int             `yaml:"from_year" json:"fromYear"`
	Rate     decimal.Decimal `yaml:"rate" json:"rate"`
}

// ProductRules holds every published charge, addition and eligibility rule of
// the product. Rates are fractions (0.06 = 6%).
type ProductRules struct {
	Name string `yaml:"name" json:"name"`

	// Eligibility
	MinAnnualPremium     decimal.Decimal `yaml:"min_annual_premium" json:"minAnnualPremium"`
	MinEntryAge          int             `yaml:"min_entry_age" json:"minEntryAge"`
	MaxEntryAge          int             `yaml:"max_entry_age" json:"maxEntryAge"`
	MaxMaturityAge       int             `yaml:"max_maturity_age" json:"maxMaturityAge"`
	MinPolicyTerm        int             `yaml:"min_policy_term" json:"minPolicyTerm"`
	MaxPolicyTerm        int             `yaml:"max_policy_term" json:"maxPolicyTerm"`
	MinPremiumPayingTerm int             `yaml:"min_premium_paying_term" json:"minPremiumPayingTerm"`

	// Premium allocation charge
	AllocationRateFirstYear decimal.Decimal `yaml:"allocation_rate_first_year" json:"allocationRateFirstYear"`
	AllocationRateRenewal   decimal.Decimal `yaml:"allocation_rate_renewal" json:"allocationRateRenewal"`
	AllocationChargeYears   int             `yaml:"allocation_charge_years" json:"allocationChargeYears"`
	TopUpAllocationRate     decimal.Decimal `yaml:"top_up_allocation_rate" json:"topUpAllocationRate"`

	// Policy administration charge; a zero cap means uncapped
	AdminChargeRate      decimal.Decimal `yaml:"admin_charge_rate" json:"adminChargeRate"`
	AdminChargeYears     int             `yaml:"admin_charge_years" json:"adminChargeYears"`
	AdminChargeCapAnnual decimal.Decimal `yaml:"admin_charge_cap_annual" json:"adminChargeCapAnnual"`

	MortalityRate decimal.Decimal `yaml:"mortality_rate" json:"mortalityRate"`
	TaxRate       decimal.Decimal `yaml:"tax_rate" json:"taxRate"`

	// Additions
	GuaranteedAdditionRate decimal.Decimal `yaml:"guaranteed_addition_rate" json:"guaranteedAdditionRate"`
	LoyaltyAdditionRate    decimal.Decimal `yaml:"loyalty_addition_rate" json:"loyaltyAdditionRate"`
	AdditionStartYear      int             `yaml:"addition_start_year" json:"additionStartYear"`
	LoyaltyMinPayingTerm   int             `yaml:"loyalty_min_paying_term" json:"loyaltyMinPayingTerm"`
	AdditionWindowMonths   int             `yaml:"addition_window_months" json:"additionWindowMonths"`
	BoosterWindowMonths    int             `yaml:"booster_window_months" json:"boosterWindowMonths"`
	BoosterStartYear       int             `yaml:"booster_start_year" json:"boosterStartYear"`
	BoosterInterval        int             `yaml:"booster_interval" json:"boosterInterval"`
	BoosterTiers           []BoosterTier   `yaml:"booster_tiers" json:"boosterTiers"`

	Funds []FundConfig `yaml:"funds" json:"funds"`
}

// DefaultProductRules returns the published rules of the standard product.
func DefaultProductRules() ProductRules {
	return ProductRules{
		Name:                    "Unit Linked Wealth Plan",
		MinAnnualPremium:        decimal.NewFromInt(12000),
		MinEntryAge:             0,
		MaxEntryAge:             65,
		MaxMaturityAge:          85,
		MinPolicyTerm:           10,
		MaxPolicyTerm:           40,
		MinPremiumPayingTerm:    5,
		AllocationRateFirstYear: decimal.NewFromFloat(0.06),
		AllocationRateRenewal:   decimal.NewFromFloat(0.04),
		AllocationChargeYears:   5,
		TopUpAllocationRate:     decimal.NewFromFloat(0.02),
		AdminChargeRate:         decimal.NewFromFloat(0.0165),
		AdminChargeYears:        5,
		AdminChargeCapAnnual:    decimal.Zero,
		MortalityRate:           decimal.NewFromFloat(0.003),
		TaxRate:                 decimal.NewFromFloat(0.18),
		GuaranteedAdditionRate:  decimal.NewFromFloat(0.0025),
		LoyaltyAdditionRate:     decimal.NewFromFloat(0.0015),
		AdditionStartYear:       6,
		LoyaltyMinPayingTerm:    5,
		AdditionWindowMonths:    12,
		BoosterWindowMonths:     60,
		BoosterStartYear:        10,
		BoosterInterval:         5,
		BoosterTiers: []BoosterTier{
			{FromYear: 10, Rate: decimal.NewFromFloat(0.0275)},
			{FromYear: 20, Rate: decimal.NewFromFloat(0.035)},
		},
		Funds: []FundConfig{
			{ID: FundLargeCapEquity, Name: "Large Cap Equity Fund", FMCRate: decimal.NewFromFloat(0.0135)},
			{ID: FundMidCapEquity, Name: "Mid Cap Equity Fund", FMCRate: decimal.NewFromFloat(0.0135)},
			{ID: FundBalanced, Name: "Balanced Fund", FMCRate: decimal.NewFromFloat(0.0125)},
			{ID: FundBond, Name: "Bond Fund", FMCRate: decimal.NewFromFloat(0.01)},
			{ID: FundMoneyMarket, Name: "Money Market Fund", FMCRate: decimal.NewFromFloat(0.0075)},
		},
	}
}

// DefaultReturnLow and DefaultReturnHigh are the dual illustration rates.
var (
	DefaultReturnLow  = decimal.NewFromFloat(0.04)
	DefaultReturnHigh = decimal.NewFromFloat(0.08)
)

// Fund resolves a fund identifier, failing with *UnknownFundError.
func (r *ProductRules) Fund(id FundID) (FundConfig, error) {
	for _, f := range r.Funds {
		if f.ID == id {
			return f, nil
		}
	}
	return FundConfig{}, &UnknownFundError{Fund: string(id), Valid: r.FundIDs()}
}

// FundIDs returns the configured fund identifiers in sorted order.
func (r *ProductRules) FundIDs() []FundID {
	ids := make([]FundID, 0, len(r.Funds))
	for _, f := range r.Funds {
		ids = append(ids, f.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AllocationRate is the premium allocation charge rate for a policy year.
func (r *ProductRules) AllocationRate(year int) decimal.Decimal {
	switch {
	case year == 1 && year <= r.AllocationChargeYears:
		return r.AllocationRateFirstYear
	case year <= r.AllocationChargeYears:
		return r.AllocationRateRenewal
	}
	return decimal.Zero
}

// AdminRate is the annual administration charge rate for a policy year.
func (r *ProductRules) AdminRate(year int) decimal.Decimal {
	if year <= r.AdminChargeYears {
		return r.AdminChargeRate
	}
	return decimal.Zero
}

// AdditionsApply reports whether guaranteed and loyalty additions are credited in year.
func (r *ProductRules) AdditionsApply(year int) bool {
	return year >= r.AdditionStartYear
}

// LoyaltyEligible reports whether a premium paying term earns loyalty additions.
func (r *ProductRules) LoyaltyEligible(premiumPayingTerm int) bool {
	return premiumPayingTerm > r.LoyaltyMinPayingTerm
}

// IsBoosterYear reports whether a booster is credited at the end of year.
func (r *ProductRules) IsBoosterYear(year int) bool {
	if r.BoosterInterval <= 0 || year < r.BoosterStartYear {
		return false
	}
	return (year-r.BoosterStartYear)%r.BoosterInterval == 0
}

// BoosterRate returns the booster rate for year, zero outside booster years.
func (r *ProductRules) BoosterRate(year int) decimal.Decimal {
	if !r.IsBoosterYear(year) {
		return decimal.Zero
	}
	rate := decimal.Zero
	for _, tier := range r.BoosterTiers {
		if year >= tier.FromYear {
			rate = tier.Rate
		}
	}
	return rate
}
