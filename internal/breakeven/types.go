package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// SolveRequest asks for the smallest annual premium whose projected
// maturity value reaches TargetMaturity in one scenario.
type SolveRequest struct {
	Request        *domain.IllustrationRequest
	TargetMaturity decimal.Decimal
	Scenario       string // defaults to low

	// Premium bounds; MinPremium defaults to the product minimum and
	// MaxPremium to the target itself.
	MinPremium *decimal.Decimal
	MaxPremium *decimal.Decimal

	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Acceptable shortfall or excess in maturity value
}

// SolveResult contains the outcome of a premium search
type SolveResult struct {
	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergenceInfo"`

	Scenario       string          `json:"scenario"`
	TargetMaturity decimal.Decimal `json:"targetMaturity"`
	AnnualPremium  decimal.Decimal `json:"annualPremium"`
	MaturityValue  decimal.Decimal `json:"maturityValue"`
	TotalPremiums  decimal.Decimal `json:"totalPremiums"`

	Illustration *domain.Illustration `json:"-"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance on the maturity value
	PremiumStep   decimal.Decimal // Stop once the premium bracket is this narrow
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(100),
		PremiumStep:   decimal.NewFromFloat(0.01),
		MaxIterations: 60,
	}
}

// Validate checks the request is internally consistent
func (r *SolveRequest) Validate() error {
	if r.Request == nil {
		return &BreakEvenError{Operation: "validate_request", Message: "illustration request is required"}
	}
	if !r.TargetMaturity.IsPositive() {
		return &BreakEvenError{Operation: "validate_request", Message: "target maturity must be positive"}
	}
	if r.MinPremium != nil && r.MaxPremium != nil && r.MinPremium.GreaterThan(*r.MaxPremium) {
		return &BreakEvenError{Operation: "validate_request", Message: "min premium cannot be greater than max premium"}
	}
	return nil
}

// BreakEvenError represents errors from the premium solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
