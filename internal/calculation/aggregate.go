package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ulipbi/internal/domain"
	"github.com/shopspring/decimal"
)

// AggregateYears folds a period trace into one row per policy year. Flows are
// summed; the fund value is the balance after the last period of the year.
func AggregateYears(records []domain.PeriodRecord, periodsPerYear int, params *domain.PolicyParameters) ([]domain.YearRow, error) {
	if periodsPerYear <= 0 {
		return nil, &domain.ComputationError{Op: "aggregate", Reason: "periods per year must be positive"}
	}
	if len(records)%periodsPerYear != 0 {
		return nil, &domain.ComputationError{
			Op:     "aggregate",
			Reason: fmt.Sprintf("%d period records do not form whole years of %d periods", len(records), periodsPerYear),
		}
	}

	years := make([]domain.YearRow, 0, len(records)/periodsPerYear)
	for start := 0; start < len(records); start += periodsPerYear {
		yearRecords := records[start : start+periodsPerYear]
		year := yearRecords[0].PolicyYear

		row := domain.YearRow{
			PolicyYear:           year,
			Age:                  params.AgeAtEntry + year - 1,
			PremiumPaid:          decimalZero,
			TopUpPaid:            decimalZero,
			AllocationCharge:     decimalZero,
			AdminCharge:          decimalZero,
			MortalityCharge:      decimalZero,
			Tax:                  decimalZero,
			FundManagementCharge: decimalZero,
			GuaranteedAddition:   decimalZero,
			LoyaltyAddition:      decimalZero,
			BoosterAddition:      decimalZero,
		}
		for _, r := range yearRecords {
			if r.PolicyYear != year {
				return nil, &domain.ComputationError{
					Op:     "aggregate",
					Reason: fmt.Sprintf("period %d belongs to year %d, expected %d", r.PeriodIndex, r.PolicyYear, year),
				}
			}
			row.PremiumPaid = row.PremiumPaid.Add(r.PremiumReceived)
			row.TopUpPaid = row.TopUpPaid.Add(r.TopUpReceived)
			row.AllocationCharge = row.AllocationCharge.Add(r.AllocationCharge)
			row.AdminCharge = row.AdminCharge.Add(r.AdminCharge)
			row.MortalityCharge = row.MortalityCharge.Add(r.MortalityCharge)
			row.Tax = row.Tax.Add(r.Tax)
			row.FundManagementCharge = row.FundManagementCharge.Add(r.FundManagementDrag)
			row.GuaranteedAddition = row.GuaranteedAddition.Add(r.GuaranteedAddition)
			row.LoyaltyAddition = row.LoyaltyAddition.Add(r.LoyaltyAddition)
			row.BoosterAddition = row.BoosterAddition.Add(r.BoosterAddition)
		}

		row.TotalCharges = row.AllocationCharge.Add(row.AdminCharge).Add(row.MortalityCharge)
		row.FundValue = yearRecords[len(yearRecords)-1].BalanceAfterPeriod
		// No surrender penalty applies, so surrender value equals fund value.
		row.SurrenderValue = row.FundValue
		row.DeathBenefit = decimal.Max(row.FundValue, params.SumAssured)

		years = append(years, row)
	}
	return years, nil
}
