package calculation

import (
	"math"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne  = decimal.NewFromInt(1)
	decimalZero = decimal.Zero
)

// workingPrecision bounds the digits carried by the fund balance between
// periods; exact decimal products would otherwise grow without limit.
const workingPrecision int32 = 10

// fundState is the mutable state of one scenario: the unit fund balance plus
// the end-of-period balances the additions average over.
type fundState struct {
	params   *domain.PolicyParameters
	rules    *domain.ProductRules
	scenario domain.ReturnScenario

	periodsPerYear int
	growthFactor   decimal.Decimal // 1 + periodic growth rate
	fmcPerPeriod   decimal.Decimal
	mortalityRate  decimal.Decimal // per period
	adminPerPeriod map[int]decimal.Decimal

	balance decimal.Decimal
	samples []decimal.Decimal
}

func newFundState(params *domain.PolicyParameters, scenario domain.ReturnScenario) *fundState {
	ppy := params.PeriodsPerYear()
	perYear := decimal.NewFromInt(int64(ppy))

	return &fundState{
		params:         params,
		rules:          &params.Rules,
		scenario:       scenario,
		periodsPerYear: ppy,
		growthFactor:   periodicGrowthFactor(scenario.AnnualReturn, ppy),
		fmcPerPeriod:   params.FundManagementChargeAnnualRate.Div(perYear),
		mortalityRate:  params.Rules.MortalityRate.Div(perYear),
		adminPerPeriod: make(map[int]decimal.Decimal),
		balance:        decimalZero,
		samples:        make([]decimal.Decimal, 0, params.TotalPeriods()),
	}
}

// periodicGrowthFactor compounds an annual rate down to the period length:
// (1+annual)^(1/periodsPerYear).
func periodicGrowthFactor(annual decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if periodsPerYear == 1 {
		return onePlus(annual)
	}
	f := math.Pow(1+annual.InexactFloat64(), 1/float64(periodsPerYear))
	return decimal.NewFromFloat(f)
}

// step advances the fund by one period. The order of operations is the
// product's charging contract and must not be rearranged.
func (s *fundState) step(period int) domain.PeriodRecord {
	p := s.params
	year := (period-1)/s.periodsPerYear + 1

	rec := domain.PeriodRecord{
		Scenario:    s.scenario.Name,
		PeriodIndex: period,
		PolicyYear:  year,
	}

	// 1. Premium intake: annual mode premium on the first period of each paying year.
	rec.PremiumReceived = decimalZero
	if (period-1)%s.periodsPerYear == 0 && year <= p.PremiumPayingTerm {
		rec.PremiumReceived = p.AnnualPremium
	}
	rec.TopUpReceived = decimalZero
	if period == 1 {
		rec.TopUpReceived = p.TopUpPremium
	}

	// 2. Premium allocation charge.
	rec.AllocationCharge = rec.PremiumReceived.Mul(s.rules.AllocationRate(year)).
		Add(rec.TopUpReceived.Mul(s.rules.TopUpAllocationRate))

	// 3. Administration charge, apportioned across the year.
	rec.AdminCharge = s.adminCharge(year)

	// 4. Net allocation buys units.
	s.balance = s.balance.Add(rec.PremiumReceived).Add(rec.TopUpReceived).Sub(rec.AllocationCharge)

	// 5. Growth, then fund management drag on the grown balance.
	grown := s.balance.Mul(s.growthFactor).Round(workingPrecision)
	rec.Growth = grown.Sub(s.balance)
	rec.FundManagementDrag = grown.Mul(s.fmcPerPeriod).Round(workingPrecision)
	s.balance = grown.Sub(rec.FundManagementDrag)

	// 6. Mortality on the sum at risk, measured against the post-growth balance.
	sumAtRisk := decimal.Max(p.SumAssured.Sub(s.balance), decimalZero)
	rec.MortalityCharge = sumAtRisk.Mul(s.mortalityRate).Round(workingPrecision)

	// 7. Tax on levied charges; FMC is a growth reduction and is not taxed.
	rec.Tax = rec.MortalityCharge.Add(rec.AllocationCharge).Add(rec.AdminCharge).
		Mul(s.rules.TaxRate).Round(workingPrecision)

	// 8. Unit cancellation, never below zero.
	s.deduct(rec.AdminCharge)
	s.deduct(rec.MortalityCharge)
	s.deduct(rec.Tax)
	s.samples = append(s.samples, s.balance)

	// 9. Year-end additions.
	if period%s.periodsPerYear == 0 {
		s.creditAdditions(&rec, year)
	}

	rec.BalanceAfterPeriod = s.balance
	return rec
}

// adminCharge returns the per-period admin charge for a policy year.
func (s *fundState) adminCharge(year int) decimal.Decimal {
	if c, ok := s.adminPerPeriod[year]; ok {
		return c
	}
	annual := s.params.AnnualPremium.Mul(s.rules.AdminRate(year))
	if s.rules.AdminChargeCapAnnual.IsPositive() {
		annual = decimal.Min(annual, s.rules.AdminChargeCapAnnual)
	}
	c := annual.Div(decimal.NewFromInt(int64(s.periodsPerYear))).Round(workingPrecision)
	s.adminPerPeriod[year] = c
	return c
}

func (s *fundState) deduct(amount decimal.Decimal) {
	s.balance = s.balance.Sub(amount)
	if s.balance.IsNegative() {
		s.balance = decimalZero
	}
}

// creditAdditions adds guaranteed, loyalty and booster additions at a year end.
// The credited balance replaces the year-end sample so later averages see it.
func (s *fundState) creditAdditions(rec *domain.PeriodRecord, year int) {
	rec.GuaranteedAddition = decimalZero
	rec.LoyaltyAddition = decimalZero
	rec.BoosterAddition = decimalZero

	if s.rules.AdditionsApply(year) {
		avg := s.trailingAverage(s.windowPeriods(s.rules.AdditionWindowMonths))
		rec.GuaranteedAddition = avg.Mul(s.rules.GuaranteedAdditionRate).Round(workingPrecision)
		if s.rules.LoyaltyEligible(s.params.PremiumPayingTerm) {
			rec.LoyaltyAddition = avg.Mul(s.rules.LoyaltyAdditionRate).Round(workingPrecision)
		}
	}

	if rate := s.rules.BoosterRate(year); rate.IsPositive() {
		avg := s.trailingAverage(s.windowPeriods(s.rules.BoosterWindowMonths))
		rec.BoosterAddition = avg.Mul(rate).Round(workingPrecision)
	}

	total := rec.GuaranteedAddition.Add(rec.LoyaltyAddition).Add(rec.BoosterAddition)
	if total.IsZero() {
		return
	}
	s.balance = s.balance.Add(total)
	s.samples[len(s.samples)-1] = s.balance
}

// windowPeriods converts a window in months to a number of simulation periods.
func (s *fundState) windowPeriods(months int) int {
	n := months * s.periodsPerYear / 12
	if n < 1 {
		return 1
	}
	return n
}

// trailingAverage averages the last n end-of-period balances, or all of them
// when fewer are available.
func (s *fundState) trailingAverage(n int) decimal.Decimal {
	if len(s.samples) == 0 {
		return decimalZero
	}
	if n > len(s.samples) {
		n = len(s.samples)
	}
	sum := decimalZero
	for _, b := range s.samples[len(s.samples)-n:] {
		sum = sum.Add(b)
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

func onePlus(value decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(value)
}
