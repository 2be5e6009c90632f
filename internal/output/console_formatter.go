package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// ConsoleFormatter renders the benefit illustration table, one charges and
// additions table per scenario, and the summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(il *domain.Illustration) ([]byte, error) {
	var buf bytes.Buffer
	p := &il.Parameters

	title := "BENEFIT ILLUSTRATION"
	if p.Rules.Name != "" {
		title += " - " + strings.ToUpper(p.Rules.Name)
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 100))
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", 100))
	fmt.Fprintf(&buf, "Age at entry: %d   Gender: %s   Fund: %s (FMC %s p.a.)\n",
		p.AgeAtEntry, p.Gender, p.Fund, FormatPercentage(p.FundManagementChargeAnnualRate))
	fmt.Fprintf(&buf, "Annual premium: %s   Sum assured: %s   Top-up: %s\n",
		FormatAmount(p.AnnualPremium), FormatAmount(p.SumAssured), FormatAmount(p.TopUpPremium))
	fmt.Fprintf(&buf, "Policy term: %d years   Premium paying term: %d years   Resolution: %s\n",
		p.PolicyTerm, p.PremiumPayingTerm, p.Resolution)
	fmt.Fprintln(&buf)

	c.writeIllustrationTable(&buf, il)
	for i := range il.Scenarios {
		fmt.Fprintln(&buf)
		c.writeChargesTable(&buf, &il.Scenarios[i])
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 50))
	fmt.Fprintf(&buf, "%-32s %17s\n", "Total premiums paid", FormatAmount(il.Summary.TotalPremiumsPaid))
	for _, sc := range il.Scenarios {
		fmt.Fprintf(&buf, "%-32s %17s\n", "Maturity value @ "+sc.Scenario.Label(), FormatAmount(sc.MaturityValue))
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "ASSUMPTIONS")
	for _, a := range IllustrationAssumptions(il) {
		fmt.Fprintf(&buf, "  - %s\n", a)
	}
	return buf.Bytes(), nil
}

// writeIllustrationTable prints year, age and premium once, then fund value
// and death benefit side by side for each scenario.
func (c ConsoleFormatter) writeIllustrationTable(buf *bytes.Buffer, il *domain.Illustration) {
	const numWidth = 15

	header := fmt.Sprintf("%4s %4s %*s", "Year", "Age", numWidth, "Premium")
	for _, sc := range il.Scenarios {
		label := sc.Scenario.Label()
		header += fmt.Sprintf(" %*s %*s %*s", numWidth, "Charges@"+label, numWidth, "Fund@"+label, numWidth, "Death@"+label)
	}
	fmt.Fprintln(buf, header)
	fmt.Fprintln(buf, strings.Repeat("-", len(header)))

	if len(il.Scenarios) == 0 {
		return
	}
	for i, y := range il.Scenarios[0].Years {
		line := fmt.Sprintf("%4d %4d %*s", y.PolicyYear, y.Age, numWidth, FormatAmount(y.PremiumPaid.Add(y.TopUpPaid)))
		for _, sc := range il.Scenarios {
			row := sc.Years[i]
			line += fmt.Sprintf(" %*s %*s %*s", numWidth, FormatAmount(row.TotalCharges),
				numWidth, FormatAmount(row.FundValue), numWidth, FormatAmount(row.DeathBenefit))
		}
		fmt.Fprintln(buf, line)
	}
}

func (c ConsoleFormatter) writeChargesTable(buf *bytes.Buffer, sc *domain.ScenarioProjection) {
	const w = 12

	fmt.Fprintf(buf, "CHARGES AND ADDITIONS @ %s (%s)\n", sc.Scenario.Label(), sc.Scenario.Name)
	header := fmt.Sprintf("%4s %*s %*s %*s %*s %*s %*s %*s %*s %*s", "Year",
		w, "PAC", w, "Prem-PAC", w, "Admin", w, "Mortality", w, "GST", w, "FMC",
		w, "Guaranteed", w, "Loyalty", w, "Booster")
	fmt.Fprintln(buf, header)
	fmt.Fprintln(buf, strings.Repeat("-", len(header)))

	for _, y := range sc.Years {
		invested := y.PremiumPaid.Add(y.TopUpPaid).Sub(y.AllocationCharge)
		fmt.Fprintf(buf, "%4d %*s %*s %*s %*s %*s %*s %*s %*s %*s\n", y.PolicyYear,
			w, FormatAmount(y.AllocationCharge), w, FormatAmount(invested), w, FormatAmount(y.AdminCharge),
			w, FormatAmount(y.MortalityCharge), w, FormatAmount(y.Tax), w, FormatAmount(y.FundManagementCharge),
			w, FormatAmount(y.GuaranteedAddition), w, FormatAmount(y.LoyaltyAddition), w, FormatAmount(y.BoosterAddition))
	}
	fmt.Fprintf(buf, "Totals: charges %s, GST %s, FMC %s, additions %s\n",
		FormatAmount(sc.TotalCharges()), FormatAmount(sc.TotalTax()),
		FormatAmount(sc.TotalFundManagementCharges()), FormatAmount(sc.TotalAdditions()))
}
