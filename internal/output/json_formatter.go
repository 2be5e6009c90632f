package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// JSONFormatter serializes the illustration as pretty-printed JSON with
// amounts rounded to 2 decimals. The period trace is included only when
// IncludePeriods is set.
type JSONFormatter struct {
	IncludePeriods bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(il *domain.Illustration) ([]byte, error) {
	return json.MarshalIndent(il.Rounded(2, j.IncludePeriods), "", "  ")
}
