package calculation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records log calls for assertions.
type TestLogger struct {
	DebugCalls []string
	InfoCalls  []string
	WarnCalls  []string
	ErrorCalls []string
}

func (l *TestLogger) Debugf(format string, args ...any) {
	l.DebugCalls = append(l.DebugCalls, fmt.Sprintf(format, args...))
}

func (l *TestLogger) Infof(format string, args ...any) {
	l.InfoCalls = append(l.InfoCalls, fmt.Sprintf(format, args...))
}

func (l *TestLogger) Warnf(format string, args ...any) {
	l.WarnCalls = append(l.WarnCalls, fmt.Sprintf(format, args...))
}

func (l *TestLogger) Errorf(format string, args ...any) {
	l.ErrorCalls = append(l.ErrorCalls, fmt.Sprintf(format, args...))
}

func testParams(resolution domain.Resolution) *domain.PolicyParameters {
	return &domain.PolicyParameters{
		AgeAtEntry:                     30,
		Gender:                         domain.GenderMale,
		AnnualPremium:                  decimal.NewFromInt(100000),
		PolicyTerm:                     20,
		PremiumPayingTerm:              10,
		SumAssured:                     decimal.NewFromInt(1000000),
		Fund:                           domain.FundLargeCapEquity,
		FundManagementChargeAnnualRate: decimal.NewFromFloat(0.0135),
		TopUpPremium:                   decimal.Zero,
		AssumedReturnLow:               decimal.NewFromFloat(0.04),
		AssumedReturnHigh:              decimal.NewFromFloat(0.08),
		Resolution:                     resolution,
		Rules:                          domain.DefaultProductRules(),
	}
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.False(t, engine.Debug)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestRunIllustration_Structure(t *testing.T) {
	engine := NewCalculationEngine()
	params := testParams(domain.ResolutionMonthly)

	il, err := engine.RunIllustration(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, il.Scenarios, 2)
	assert.Equal(t, domain.ScenarioLow, il.Scenarios[0].Scenario.Name)
	assert.Equal(t, domain.ScenarioHigh, il.Scenarios[1].Scenario.Name)

	for _, sc := range il.Scenarios {
		assert.Len(t, sc.Periods, 240)
		require.Len(t, sc.Years, 20)
		for i, y := range sc.Years {
			assert.Equal(t, i+1, y.PolicyYear)
			assert.Equal(t, 30+i, y.Age)
		}
		assert.True(t, sc.MaturityValue.Equal(sc.Years[19].FundValue))
	}

	assert.True(t, il.Summary.TotalPremiumsPaid.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, il.Summary.MaturityValueLow.Equal(il.Scenarios[0].MaturityValue))
	assert.True(t, il.Summary.MaturityValueHigh.Equal(il.Scenarios[1].MaturityValue))
}

func TestRunIllustration_StressScenario(t *testing.T) {
	engine := NewCalculationEngine()
	params := testParams(domain.ResolutionAnnual)
	zero := decimal.Zero
	params.StressReturn = &zero

	il, err := engine.RunIllustration(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, il.Scenarios, 3)

	stress := il.Scenario(domain.ScenarioStress)
	require.NotNil(t, stress)
	assert.True(t, stress.MaturityValue.LessThan(il.Summary.MaturityValueLow))
	for _, p := range stress.Periods {
		assert.True(t, p.Growth.IsZero(), "zero return should produce no growth")
	}
}

func TestRunIllustration_HighNotBelowLow(t *testing.T) {
	engine := NewCalculationEngine()

	for _, res := range []domain.Resolution{domain.ResolutionAnnual, domain.ResolutionMonthly} {
		t.Run(string(res), func(t *testing.T) {
			il, err := engine.RunIllustration(context.Background(), testParams(res))
			require.NoError(t, err)

			low := il.Scenario(domain.ScenarioLow)
			high := il.Scenario(domain.ScenarioHigh)
			require.NotNil(t, low)
			require.NotNil(t, high)
			for i := range low.Years {
				assert.True(t, high.Years[i].FundValue.GreaterThanOrEqual(low.Years[i].FundValue),
					"year %d: high %s below low %s", i+1, high.Years[i].FundValue, low.Years[i].FundValue)
			}
		})
	}
}

func TestRunIllustration_Invariants(t *testing.T) {
	engine := NewCalculationEngine()
	params := testParams(domain.ResolutionMonthly)

	il, err := engine.RunIllustration(context.Background(), params)
	require.NoError(t, err)

	for _, sc := range il.Scenarios {
		for _, p := range sc.Periods {
			assert.False(t, p.BalanceAfterPeriod.IsNegative(), "period %d balance negative", p.PeriodIndex)
		}
		for _, y := range sc.Years {
			assert.True(t, y.DeathBenefit.GreaterThanOrEqual(params.SumAssured))
			assert.True(t, y.DeathBenefit.GreaterThanOrEqual(y.FundValue))
			assert.True(t, y.SurrenderValue.Equal(y.FundValue))
			assert.True(t, y.TotalCharges.Equal(y.AllocationCharge.Add(y.AdminCharge).Add(y.MortalityCharge)))
			if y.PolicyYear > params.PremiumPayingTerm {
				assert.True(t, y.PremiumPaid.IsZero(), "year %d should carry no premium", y.PolicyYear)
			} else {
				assert.True(t, y.PremiumPaid.Equal(params.AnnualPremium))
			}
		}
	}
}

func TestRunIllustration_Idempotent(t *testing.T) {
	engine := NewCalculationEngine()
	params := testParams(domain.ResolutionMonthly)

	first, err := engine.RunIllustration(context.Background(), params)
	require.NoError(t, err)
	second, err := engine.RunIllustration(context.Background(), params)
	require.NoError(t, err)

	for i := range first.Scenarios {
		for j := range first.Scenarios[i].Years {
			a := first.Scenarios[i].Years[j]
			b := second.Scenarios[i].Years[j]
			assert.True(t, a.FundValue.Equal(b.FundValue))
			assert.True(t, a.Tax.Equal(b.Tax))
		}
	}
}

func TestRunIllustration_ComputationErrors(t *testing.T) {
	engine := NewCalculationEngine()

	tests := []struct {
		name   string
		params *domain.PolicyParameters
	}{
		{name: "nil parameters", params: nil},
		{
			name: "unsupported resolution",
			params: func() *domain.PolicyParameters {
				p := testParams(domain.ResolutionMonthly)
				p.Resolution = "weekly"
				return p
			}(),
		},
		{
			name: "paying term beyond policy term",
			params: func() *domain.PolicyParameters {
				p := testParams(domain.ResolutionAnnual)
				p.PremiumPayingTerm = 25
				return p
			}(),
		},
		{
			name: "total loss return",
			params: func() *domain.PolicyParameters {
				p := testParams(domain.ResolutionAnnual)
				p.AssumedReturnLow = decimal.NewFromInt(-1)
				return p
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			il, err := engine.RunIllustration(context.Background(), tt.params)
			assert.Nil(t, il)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrComputation))
			var ce *domain.ComputationError
			assert.True(t, errors.As(err, &ce))
			assert.False(t, domain.IsClientError(err))
		})
	}
}

func TestRunIllustration_Cancelled(t *testing.T) {
	engine := NewCalculationEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	il, err := engine.RunIllustration(ctx, testParams(domain.ResolutionMonthly))
	assert.Nil(t, il)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunIllustration_Logging(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	_, err := engine.RunIllustration(context.Background(), testParams(domain.ResolutionAnnual))
	require.NoError(t, err)
	assert.Len(t, logger.InfoCalls, 2)
	assert.Empty(t, logger.DebugCalls, "period tracing is off by default")

	engine.Debug = true
	logger.InfoCalls = nil
	_, err = engine.RunIllustration(context.Background(), testParams(domain.ResolutionAnnual))
	require.NoError(t, err)
	assert.Len(t, logger.DebugCalls, 40, "one debug line per policy year per scenario")
	assert.Contains(t, logger.DebugCalls[0], "[low] year 1:")
}

func TestForScenario(t *testing.T) {
	assert.Equal(t, NopLogger{}, forScenario(NopLogger{}, domain.ScenarioLow))

	logger := &TestLogger{}
	l := forScenario(logger, domain.ScenarioHigh)
	l.Infof("start")
	l.Warnf("balance %s", "0.00")
	l.Errorf("failed")
	l.Debugf("year %d", 3)
	assert.Equal(t, []string{"[high] start"}, logger.InfoCalls)
	assert.Equal(t, []string{"[high] balance 0.00"}, logger.WarnCalls)
	assert.Equal(t, []string{"[high] failed"}, logger.ErrorCalls)
	assert.Equal(t, []string{"[high] year 3"}, logger.DebugCalls)

	logger.DebugCalls = nil
	logYearEnd(l, domain.PeriodRecord{
		PolicyYear:         10,
		LoyaltyAddition:    decimal.RequireFromString("1234.5678"),
		BalanceAfterPeriod: decimal.NewFromInt(500000),
	})
	assert.Equal(t, []string{"[high] year 10: guaranteed=0.00 loyalty=1234.57 booster=0.00 balance=500000.00"}, logger.DebugCalls)
}
