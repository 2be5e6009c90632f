package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ulipbi/internal/calculation"
	"github.com/rgehrsitz/ulipbi/internal/config"
	"github.com/rgehrsitz/ulipbi/internal/domain"
)

var two = decimal.NewFromInt(2)

// Solver searches premiums for a target maturity value
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Normalizer *config.Normalizer
	Options    SolverOptions
}

// NewSolver creates a new premium solver
func NewSolver(calcEngine *calculation.CalculationEngine, rules domain.ProductRules, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Normalizer: config.NewNormalizer(rules),
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine, rules domain.ProductRules) *Solver {
	return NewSolver(calcEngine, rules, DefaultSolverOptions())
}

// SolvePremium bisects the annual premium until the scenario's maturity value
// is within tolerance of the target. Maturity value rises with premium, so the
// upper end of the bracket always meets the target.
func (s *Solver) SolvePremium(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.Scenario == "" {
		req.Scenario = domain.ScenarioLow
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	lo := s.Normalizer.Rules.MinAnnualPremium
	if req.MinPremium != nil {
		lo = *req.MinPremium
	}
	hi := req.TargetMaturity
	if req.MaxPremium != nil {
		hi = *req.MaxPremium
	}

	low, err := s.evaluate(ctx, req, lo)
	if err != nil {
		return nil, err
	}
	if !low.MaturityValue.LessThan(req.TargetMaturity) {
		low.Success = true
		low.ConvergenceInfo = "Minimum premium already meets the target"
		return low, nil
	}

	best, err := s.evaluate(ctx, req, hi)
	if err != nil {
		return nil, err
	}
	if best.MaturityValue.LessThan(req.TargetMaturity) {
		return nil, &BreakEvenError{
			Operation: "solve_premium",
			Message: fmt.Sprintf("target %s is not reachable with premiums up to %s (maturity %s)",
				req.TargetMaturity.StringFixed(2), hi.StringFixed(2), best.MaturityValue.StringFixed(2)),
		}
	}

	iterations := 2
	for iterations < req.MaxIterations {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if hi.Sub(lo).LessThanOrEqual(s.Options.PremiumStep) {
			best.Success = true
			best.Iterations = iterations
			best.ConvergenceInfo = "Binary search converged"
			return best, nil
		}

		iterations++
		mid := lo.Add(hi).Div(two).Round(2)
		result, err := s.evaluate(ctx, req, mid)
		if err != nil {
			return nil, err
		}

		diff := result.MaturityValue.Sub(req.TargetMaturity)
		if diff.IsNegative() {
			lo = mid
			continue
		}
		hi = mid
		best = result
		if diff.LessThan(req.Tolerance) {
			best.Success = true
			best.Iterations = iterations
			best.ConvergenceInfo = fmt.Sprintf("Converged to target maturity within %s", req.Tolerance.StringFixed(0))
			return best, nil
		}
	}

	best.Iterations = iterations
	best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return best, nil
}

// evaluate illustrates the request at one annual premium.
func (s *Solver) evaluate(ctx context.Context, req SolveRequest, premium decimal.Decimal) (*SolveResult, error) {
	r := *req.Request
	r.AnnualPremium = premium

	params, err := s.Normalizer.Normalize(&r)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve_premium",
			Message:   fmt.Sprintf("premium %s is not a valid input", premium.StringFixed(2)),
			Cause:     err,
		}
	}
	il, err := s.CalcEngine.RunIllustration(ctx, params)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve_premium",
			Message:   "failed to calculate illustration",
			Cause:     err,
		}
	}
	sc := il.Scenario(req.Scenario)
	if sc == nil {
		return nil, &BreakEvenError{
			Operation: "solve_premium",
			Message:   fmt.Sprintf("scenario %q is not part of the illustration", req.Scenario),
		}
	}

	return &SolveResult{
		Iterations:     1,
		Scenario:       req.Scenario,
		TargetMaturity: req.TargetMaturity,
		AnnualPremium:  premium,
		MaturityValue:  sc.MaturityValue,
		TotalPremiums:  params.TotalPremiums(),
		Illustration:   il,
	}, nil
}
