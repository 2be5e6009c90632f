package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// CSVDetailedExporter exports the full period trace of every scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(il *domain.Illustration) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "AnnualReturn", "Period", "PolicyYear",
		"PremiumReceived", "TopUpReceived", "AllocationCharge", "AdminCharge",
		"Growth", "FundManagementDrag", "MortalityCharge", "Tax",
		"GuaranteedAddition", "LoyaltyAddition", "BoosterAddition", "BalanceAfterPeriod",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range il.Scenarios {
		for _, p := range sc.Periods {
			row := []string{
				sc.Scenario.Name,
				sc.Scenario.AnnualReturn.String(),
				strconv.Itoa(p.PeriodIndex),
				strconv.Itoa(p.PolicyYear),
				p.PremiumReceived.StringFixed(2),
				p.TopUpReceived.StringFixed(2),
				p.AllocationCharge.StringFixed(2),
				p.AdminCharge.StringFixed(2),
				p.Growth.StringFixed(2),
				p.FundManagementDrag.StringFixed(2),
				p.MortalityCharge.StringFixed(2),
				p.Tax.StringFixed(2),
				p.GuaranteedAddition.StringFixed(2),
				p.LoyaltyAddition.StringFixed(2),
				p.BoosterAddition.StringFixed(2),
				p.BalanceAfterPeriod.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
