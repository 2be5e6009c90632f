package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs the unit fund projection for every return scenario
// of an illustration.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // log each policy year-end of every scenario
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunIllustration projects every scenario of params and aggregates the
// period trace into policy-year rows. Scenarios run sequentially so results
// are reproducible; ctx is checked between scenarios and policy years.
func (ce *CalculationEngine) RunIllustration(ctx context.Context, params *domain.PolicyParameters) (*domain.Illustration, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}

	ce.Logger.Infof("running illustration: %s", params)

	il := &domain.Illustration{
		Parameters: *params,
		Summary:    domain.IllustrationSummary{TotalPremiumsPaid: params.TotalPremiums()},
	}

	for _, scenario := range params.Scenarios() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		proj, err := ce.ProjectScenario(ctx, params, scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		il.Scenarios = append(il.Scenarios, *proj)

		switch scenario.Name {
		case domain.ScenarioLow:
			il.Summary.MaturityValueLow = proj.MaturityValue
		case domain.ScenarioHigh:
			il.Summary.MaturityValueHigh = proj.MaturityValue
		}
	}

	ce.Logger.Infof("illustration complete: maturity low=%s high=%s",
		il.Summary.MaturityValueLow.StringFixed(2), il.Summary.MaturityValueHigh.StringFixed(2))
	return il, nil
}

// ProjectScenario simulates one scenario from period 1 to maturity.
func (ce *CalculationEngine) ProjectScenario(ctx context.Context, params *domain.PolicyParameters, scenario domain.ReturnScenario) (*domain.ScenarioProjection, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}

	log := forScenario(ce.Logger, scenario.Name)
	state := newFundState(params, scenario)
	ppy := state.periodsPerYear
	records := make([]domain.PeriodRecord, 0, params.TotalPeriods())

	for period := 1; period <= params.TotalPeriods(); period++ {
		if (period-1)%ppy == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec := state.step(period)
		if ce.Debug && period%ppy == 0 {
			logYearEnd(log, rec)
		}
		records = append(records, rec)
	}

	years, err := AggregateYears(records, ppy, params)
	if err != nil {
		return nil, err
	}

	maturity := decimalZero
	if len(years) > 0 {
		maturity = years[len(years)-1].FundValue
	}

	return &domain.ScenarioProjection{
		Scenario:      scenario,
		Periods:       records,
		Years:         years,
		MaturityValue: maturity,
	}, nil
}

// validateParameters rejects parameters that bypassed the normalizer.
func validateParameters(params *domain.PolicyParameters) error {
	if params == nil {
		return &domain.ComputationError{Op: "projection", Reason: "nil policy parameters"}
	}
	if params.PeriodsPerYear() == 0 {
		return &domain.ComputationError{Op: "projection", Reason: fmt.Sprintf("unsupported resolution %q", params.Resolution)}
	}
	if params.PolicyTerm <= 0 {
		return &domain.ComputationError{Op: "projection", Reason: "policy term must be positive"}
	}
	if params.PremiumPayingTerm > params.PolicyTerm {
		return &domain.ComputationError{Op: "projection", Reason: "premium paying term exceeds policy term"}
	}
	if params.AnnualPremium.IsNegative() || params.SumAssured.IsNegative() || params.TopUpPremium.IsNegative() {
		return &domain.ComputationError{Op: "projection", Reason: "negative monetary input"}
	}
	minusOne := decimal.NewFromInt(-1)
	for _, s := range params.Scenarios() {
		if s.AnnualReturn.LessThanOrEqual(minusOne) {
			return &domain.ComputationError{Op: "projection", Reason: fmt.Sprintf("scenario %s return must exceed -100%%", s.Name)}
		}
	}
	return nil
}
