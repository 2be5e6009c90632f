package tui

import (
	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// Message types for the Bubble Tea update cycle

// RequestLoadedMsg signals the input file has been parsed
type RequestLoadedMsg struct {
	Request *domain.IllustrationRequest
}

// CalculationCompleteMsg signals an illustration run has finished
type CalculationCompleteMsg struct {
	Resolution   domain.Resolution
	Illustration *domain.Illustration
	Err          error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
