package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rgehrsitz/ulipbi/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a premium search
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("PREMIUM FOR TARGET MATURITY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Scenario:            %s\n", result.Scenario))
	sb.WriteString(fmt.Sprintf("Target Maturity:     %s\n", output.FormatAmount(result.TargetMaturity)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULT\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Annual Premium:      %s\n", output.FormatAmount(result.AnnualPremium)))
	sb.WriteString(fmt.Sprintf("Total Premiums:      %s\n", output.FormatAmount(result.TotalPremiums)))
	sb.WriteString(fmt.Sprintf("Maturity Value:      %s\n", output.FormatAmount(result.MaturityValue)))

	if il := result.Illustration; il != nil {
		for _, sc := range il.Scenarios {
			if sc.Scenario.Name == result.Scenario {
				continue
			}
			sb.WriteString(fmt.Sprintf("Maturity @ %-8s  %s\n", sc.Scenario.Label()+":", output.FormatAmount(sc.MaturityValue)))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "Converged"
	}
	return "Not converged"
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON for a premium search
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal solve result: %w", err)
	}
	return string(data) + "\n", nil
}
