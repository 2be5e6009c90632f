package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/ulipbi/internal/calculation"
	"github.com/rgehrsitz/ulipbi/internal/config"
	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// CompareEngine runs one illustration request against several funds
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	Normalizer        *config.Normalizer
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine, rules domain.ProductRules) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		Normalizer:        config.NewNormalizer(rules),
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseFund domain.FundID   // Fund to compare against; defaults to the request's fund
	Funds    []domain.FundID // Alternatives; empty means every other configured fund
}

// Compare illustrates req once per fund and measures each against the base fund.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	req *domain.IllustrationRequest,
	options CompareOptions,
) (*ComparisonSet, error) {
	rules := &ce.Normalizer.Rules

	baseID := options.BaseFund
	if baseID == "" {
		baseID = domain.FundID(req.Fund)
	}

	baseResult, err := ce.runFund(ctx, req, baseID)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base fund: %w", err)
	}

	funds := options.Funds
	if len(funds) == 0 {
		funds = rules.FundIDs()
	}

	alternatives := []ComparisonResult{}
	for _, id := range funds {
		if id == baseID {
			continue
		}
		altResult, err := ce.runFund(ctx, req, id)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate fund %s: %w", id, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(*altResult, *baseResult))
	}

	compSet := &ComparisonSet{
		BaseFund:           baseID,
		BaseResult:         baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) runFund(ctx context.Context, req *domain.IllustrationRequest, id domain.FundID) (*ComparisonResult, error) {
	fundReq := *req
	fundReq.Fund = string(id)

	params, err := ce.Normalizer.Normalize(&fundReq)
	if err != nil {
		return nil, err
	}
	fund, err := ce.Normalizer.Rules.Fund(id)
	if err != nil {
		return nil, err
	}

	il, err := ce.CalcEngine.RunIllustration(ctx, params)
	if err != nil {
		return nil, err
	}

	result := ce.MetricsCalculator.CalculateMetrics(fund, il)
	return &result, nil
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Highest maturity value at the low assumed return
	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].MaturityValueLow.GreaterThan(best.MaturityValueLow) {
			best = &compSet.AlternativeResults[i]
		}
	}
	if best != compSet.BaseResult {
		diff := best.MaturityValueLow.Sub(compSet.BaseResult.MaturityValueLow)
		recommendations = append(recommendations,
			"Highest Maturity: "+string(best.Fund)+" matures "+diff.StringFixed(0)+
				" higher than "+string(compSet.BaseFund)+" at the low assumed return")
	}

	// Lowest fund management cost
	cheapest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].LifetimeFMC.LessThan(cheapest.LifetimeFMC) {
			cheapest = &compSet.AlternativeResults[i]
		}
	}
	if cheapest != compSet.BaseResult {
		savings := compSet.BaseResult.LifetimeFMC.Sub(cheapest.LifetimeFMC)
		recommendations = append(recommendations,
			"Lowest FMC: "+string(cheapest.Fund)+" saves "+savings.StringFixed(0)+
				" in fund management charges over the term")
	}

	return recommendations
}
