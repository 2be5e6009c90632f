package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Fund",
		"Type",
		"FMC Rate",
		"Maturity Value Low",
		"Maturity Value High",
		"Lifetime Charges",
		"Lifetime Tax",
		"Lifetime FMC",
		"Lifetime Additions",
		"Maturity Diff Low",
		"Maturity % Change Low",
		"Maturity Diff High",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(r *ComparisonResult, kind string) []string {
	return []string{
		string(r.Fund),
		kind,
		r.FMCRate.String(),
		r.MaturityValueLow.StringFixed(2),
		r.MaturityValueHigh.StringFixed(2),
		r.LifetimeCharges.StringFixed(2),
		r.LifetimeTax.StringFixed(2),
		r.LifetimeFMC.StringFixed(2),
		r.LifetimeAdditions.StringFixed(2),
		r.MaturityDiffLow.StringFixed(2),
		r.MaturityPctLow.StringFixed(2),
		r.MaturityDiffHigh.StringFixed(2),
	}
}
