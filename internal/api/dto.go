package api

import (
	"time"

	"github.com/rgehrsitz/ulipbi/internal/compare"
	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// IllustrationResponse wraps an illustration with its run metadata.
type IllustrationResponse struct {
	RunID        string               `json:"runId"`
	GeneratedAt  time.Time            `json:"generatedAt"`
	Illustration *domain.Illustration `json:"illustration"`
}

// CompareRequest asks for one illustration request to be run across funds.
type CompareRequest struct {
	Request  domain.IllustrationRequest `json:"request"`
	BaseFund string                     `json:"baseFund,omitempty"`
	Funds    []string                   `json:"funds,omitempty"`
}

// CompareResponse wraps a fund comparison with its run metadata.
type CompareResponse struct {
	RunID      string                 `json:"runId"`
	Comparison *compare.ComparisonSet `json:"comparison"`
}

// FundDTO is one entry of the fund catalogue.
type FundDTO struct {
	ID      domain.FundID `json:"id"`
	Name    string        `json:"name"`
	FMCRate string        `json:"fmcRate"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
