package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter exports one row per policy year with a block of named
// columns per scenario, amounts rounded to 2 decimals.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

// scenarioColumns are the per-scenario YearRow fields, in column order.
var scenarioColumns = []struct {
	name  string
	value func(domain.YearRow) decimal.Decimal
}{
	{"AllocationCharge", func(y domain.YearRow) decimal.Decimal { return y.AllocationCharge }},
	{"AdminCharge", func(y domain.YearRow) decimal.Decimal { return y.AdminCharge }},
	{"MortalityCharge", func(y domain.YearRow) decimal.Decimal { return y.MortalityCharge }},
	{"TotalCharges", func(y domain.YearRow) decimal.Decimal { return y.TotalCharges }},
	{"Tax", func(y domain.YearRow) decimal.Decimal { return y.Tax }},
	{"FundManagementCharge", func(y domain.YearRow) decimal.Decimal { return y.FundManagementCharge }},
	{"GuaranteedAddition", func(y domain.YearRow) decimal.Decimal { return y.GuaranteedAddition }},
	{"LoyaltyAddition", func(y domain.YearRow) decimal.Decimal { return y.LoyaltyAddition }},
	{"BoosterAddition", func(y domain.YearRow) decimal.Decimal { return y.BoosterAddition }},
	{"FundValue", func(y domain.YearRow) decimal.Decimal { return y.FundValue }},
	{"SurrenderValue", func(y domain.YearRow) decimal.Decimal { return y.SurrenderValue }},
	{"DeathBenefit", func(y domain.YearRow) decimal.Decimal { return y.DeathBenefit }},
}

func (c CSVFormatter) Format(il *domain.Illustration) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"PolicyYear", "Age", "PremiumPaid", "TopUpPaid"}
	for _, sc := range il.Scenarios {
		for _, col := range scenarioColumns {
			header = append(header, fmt.Sprintf("%s_%s", col.name, sc.Scenario.Name))
		}
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if len(il.Scenarios) > 0 {
		for i, y := range il.Scenarios[0].Years {
			row := []string{
				strconv.Itoa(y.PolicyYear),
				strconv.Itoa(y.Age),
				y.PremiumPaid.StringFixed(2),
				y.TopUpPaid.StringFixed(2),
			}
			for _, sc := range il.Scenarios {
				for _, col := range scenarioColumns {
					row = append(row, col.value(sc.Years[i]).StringFixed(2))
				}
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
