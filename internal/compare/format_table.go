package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing funds
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("FUND COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Base Fund: %s\n", compSet.BaseFund))
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.InputPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Fund",
		numWidth, "FMC",
		numWidth, "Maturity Low",
		numWidth, "Maturity High",
		numWidth, "Charges",
		numWidth, "FMC Paid"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Fund))
			sb.WriteString(fmt.Sprintf("  Maturity (low):   %s%s (%s%%)\n",
				tf.deltaSymbol(alt.MaturityDiffLow),
				tf.formatDecimal(alt.MaturityDiffLow.Abs()),
				alt.MaturityPctLow.StringFixed(1)))
			sb.WriteString(fmt.Sprintf("  Maturity (high):  %s%s\n",
				tf.deltaSymbol(alt.MaturityDiffHigh),
				tf.formatDecimal(alt.MaturityDiffHigh.Abs())))
			if !alt.FMCDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  FMC Rate:         %s%s%%\n",
					tf.deltaSymbol(alt.FMCDiffFromBase),
					alt.FMCDiffFromBase.Abs().Mul(decimal.NewFromInt(100)).StringFixed(2)))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single fund row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := string(result.Fund)
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.FMCRate.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%",
		numWidth, tf.formatDecimal(result.MaturityValueLow),
		numWidth, tf.formatDecimal(result.MaturityValueHigh),
		numWidth, tf.formatDecimal(result.LifetimeCharges),
		numWidth, tf.formatDecimal(result.LifetimeFMC))
}

// formatDecimal formats a decimal for display (in thousands or millions)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
