package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ulipbi/internal/calculation"
	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *domain.IllustrationRequest {
	return &domain.IllustrationRequest{
		Age:               30,
		Gender:            "Male",
		AnnualPremium:     decimal.NewFromInt(100000),
		SumAssured:        decimal.NewFromInt(1000000),
		PolicyTerm:        20,
		PremiumPayingTerm: 10,
		Fund:              string(domain.FundLargeCapEquity),
		Assumptions:       domain.Assumptions{Resolution: "annual"},
	}
}

func newTestEngine() *CompareEngine {
	return NewCompareEngine(calculation.NewCalculationEngine(), domain.DefaultProductRules())
}

func TestCompareEngine_AllFunds(t *testing.T) {
	compSet, err := newTestEngine().Compare(context.Background(), testRequest(), CompareOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.FundLargeCapEquity, compSet.BaseFund)
	require.NotNil(t, compSet.BaseResult)
	require.Len(t, compSet.AlternativeResults, 4)

	var ids []domain.FundID
	for _, r := range compSet.AlternativeResults {
		ids = append(ids, r.Fund)
	}
	assert.Equal(t, []domain.FundID{domain.FundBalanced, domain.FundBond, domain.FundMidCapEquity, domain.FundMoneyMarket}, ids)

	for _, r := range compSet.AlternativeResults {
		switch r.Fund {
		case domain.FundMidCapEquity:
			// Same FMC as the base fund, so the same projection.
			assert.True(t, r.MaturityDiffLow.IsZero(), "mid cap diff %s", r.MaturityDiffLow)
			assert.True(t, r.FMCDiffFromBase.IsZero())
		default:
			assert.True(t, r.FMCRate.LessThan(compSet.BaseResult.FMCRate))
			assert.True(t, r.MaturityDiffLow.IsPositive(), "%s should beat a dearer fund", r.Fund)
			assert.True(t, r.MaturityPctLow.IsPositive())
		}
		assert.True(t, r.MaturityValueHigh.GreaterThan(r.MaturityValueLow))
		assert.NotNil(t, r.Illustration)
	}

	require.Len(t, compSet.Recommendations, 2)
	assert.True(t, strings.HasPrefix(compSet.Recommendations[0], "Highest Maturity: money_market"))
	assert.True(t, strings.HasPrefix(compSet.Recommendations[1], "Lowest FMC: money_market"))
}

func TestCompareEngine_SelectedFunds(t *testing.T) {
	compSet, err := newTestEngine().Compare(context.Background(), testRequest(), CompareOptions{
		BaseFund: domain.FundBond,
		Funds:    []domain.FundID{domain.FundBond, domain.FundBalanced},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FundBond, compSet.BaseFund)
	require.Len(t, compSet.AlternativeResults, 1, "base fund is not repeated as an alternative")
	alt := compSet.AlternativeResults[0]
	assert.Equal(t, domain.FundBalanced, alt.Fund)
	assert.True(t, alt.MaturityDiffLow.IsNegative())
	assert.Empty(t, compSet.Recommendations, "base fund already leads")
	assert.Len(t, compSet.All(), 2)
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Compare(context.Background(), testRequest(), CompareOptions{BaseFund: "gold"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownFund)

	_, err = engine.Compare(context.Background(), testRequest(), CompareOptions{Funds: []domain.FundID{"gold"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownFund)

	req := testRequest()
	req.Age = 90
	_, err = engine.Compare(context.Background(), req, CompareOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func testComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseFund:  domain.FundLargeCapEquity,
		InputPath: "/path/to/input.yaml",
		BaseResult: &ComparisonResult{
			Fund:              domain.FundLargeCapEquity,
			FMCRate:           decimal.NewFromFloat(0.0135),
			MaturityValueLow:  decimal.NewFromInt(2500000),
			MaturityValueHigh: decimal.NewFromInt(3400000),
			LifetimeCharges:   decimal.NewFromInt(90000),
			LifetimeFMC:       decimal.NewFromInt(420000),
		},
		AlternativeResults: []ComparisonResult{
			{
				Fund:              domain.FundBond,
				FMCRate:           decimal.NewFromFloat(0.01),
				MaturityValueLow:  decimal.NewFromInt(2600000),
				MaturityValueHigh: decimal.NewFromInt(3550000),
				LifetimeCharges:   decimal.NewFromInt(89000),
				LifetimeFMC:       decimal.NewFromInt(320000),
				MaturityDiffLow:   decimal.NewFromInt(100000),
				MaturityDiffHigh:  decimal.NewFromInt(150000),
				MaturityPctLow:    decimal.NewFromFloat(4),
				FMCDiffFromBase:   decimal.NewFromFloat(-0.0035),
			},
		},
		Recommendations: []string{"Highest Maturity: bond matures 100000 higher than large_cap_equity at the low assumed return"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	result := (&TableFormatter{}).Format(testComparisonSet())

	assert.Contains(t, result, "FUND COMPARISON")
	assert.Contains(t, result, "Base Fund: large_cap_equity")
	assert.Contains(t, result, "Input: /path/to/input.yaml")
	assert.Contains(t, result, "large_cap_equity (base)")
	assert.Contains(t, result, "2.50M")
	assert.Contains(t, result, "Maturity (low):   +100.0K (4.0%)")
	assert.Contains(t, result, "FMC Rate:         -0.35%")
	assert.Contains(t, result, "RECOMMENDATIONS")
}

func TestCSVFormatter_Format(t *testing.T) {
	result, err := (&CSVFormatter{}).Format(testComparisonSet())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(result), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Fund,Type,FMC Rate"))
	assert.True(t, strings.HasPrefix(lines[1], "large_cap_equity,base,0.0135,2500000.00"))
	assert.True(t, strings.HasPrefix(lines[2], "bond,alternative,0.01,2600000.00"))
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		result, err := (&JSONFormatter{Pretty: pretty}).Format(testComparisonSet())
		require.NoError(t, err)

		var decoded struct {
			BaseFund           string `json:"baseFund"`
			AlternativeResults []struct {
				Fund            string `json:"fund"`
				MaturityDiffLow string `json:"maturityDiffLow"`
			} `json:"alternativeResults"`
		}
		require.NoError(t, json.Unmarshal([]byte(result), &decoded))
		assert.Equal(t, "large_cap_equity", decoded.BaseFund)
		require.Len(t, decoded.AlternativeResults, 1)
		assert.Equal(t, "100000", decoded.AlternativeResults[0].MaturityDiffLow)
		assert.Equal(t, pretty, strings.Contains(result, "\n  "))
	}
}

func TestJSONFormatter_RoundsMoney(t *testing.T) {
	compSet, err := newTestEngine().Compare(context.Background(), testRequest(), CompareOptions{})
	require.NoError(t, err)
	require.False(t, compSet.BaseResult.MaturityValueLow.Equal(compSet.BaseResult.MaturityValueLow.Round(2)),
		"engine precision should exceed 2 decimals")

	result, err := (&JSONFormatter{}).Format(compSet)
	require.NoError(t, err)

	var decoded struct {
		BaseResult         map[string]interface{}   `json:"baseResult"`
		AlternativeResults []map[string]interface{} `json:"alternativeResults"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	require.Len(t, decoded.AlternativeResults, 4)

	for _, r := range append([]map[string]interface{}{decoded.BaseResult}, decoded.AlternativeResults...) {
		for _, key := range []string{
			"maturityValueLow", "maturityValueHigh", "lifetimeCharges", "lifetimeTax",
			"lifetimeFmc", "lifetimeAdditions", "maturityDiffLow", "maturityDiffHigh", "maturityPctLow",
		} {
			s, ok := r[key].(string)
			require.True(t, ok, "%s missing for %v", key, r["fund"])
			d, err := decimal.NewFromString(s)
			require.NoError(t, err)
			assert.True(t, d.Equal(d.Round(2)), "%s = %s has more than 2 decimals", key, s)
		}
	}
	assert.Equal(t, "0.0135", decoded.BaseResult["fmcRate"])

	// Formatting leaves the caller's set untouched.
	assert.False(t, compSet.BaseResult.MaturityValueLow.Equal(compSet.BaseResult.MaturityValueLow.Round(2)))
}
