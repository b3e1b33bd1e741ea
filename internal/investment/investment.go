// Package investment computes yield, cash-flow and depreciation figures for
// a property purchase. All functions are pure and total: a zero or negative
// purchase price yields zero figures instead of a division error.
package investment

import (
	"math"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
)

// Default depreciation percentages per AfA model. Representative statutory
// rates; an explicit override on the input takes precedence.
const (
	linearRatePercent = 2.0
	rate7bPercent     = 5.0
	rate7hPercent     = 9.0
	rate7iPercent     = 9.0
)

const monthsPerYear = 12

// DefaultRate returns the depreciation percentage for the given AfA model.
// Unknown models fall back to the linear rate.
func DefaultRate(model models.AfaModel) float64 {
	switch model {
	case models.Afa7b:
		return rate7bPercent
	case models.Afa7h:
		return rate7hPercent
	case models.Afa7i:
		return rate7iPercent
	default:
		return linearRatePercent
	}
}

// Calculate maps a CalculationInput to a CalculationResult.
func Calculate(in models.CalculationInput) models.CalculationResult {
	rate := DefaultRate(in.AfaModel)
	if in.AfaRateOverride != nil && *in.AfaRateOverride > 0 {
		rate = *in.AfaRateOverride
	}

	buildingShare := clamp(in.BuildingShare, 0, 1)

	var grossYield, netYield, depreciation float64
	if in.PurchasePrice > 0 {
		annualRent := in.MonthlyRent * monthsPerYear
		annualManagement := in.MonthlyManagementCost * monthsPerYear
		grossYield = annualRent / in.PurchasePrice * 100
		netYield = (annualRent - annualManagement) / in.PurchasePrice * 100
		depreciation = roundCents(in.PurchasePrice * buildingShare * rate / 100)
	}

	loan := in.PurchasePrice - in.Equity
	if loan < 0 {
		loan = 0
	}

	// First-year annuity approximation: interest plus initial repayment on
	// the full financed amount, spread over twelve months.
	debtService := roundCents(loan * (in.InterestRatePercent + in.RepaymentRatePercent) / 100 / monthsPerYear)
	cashFlow := roundCents(in.MonthlyRent - in.MonthlyManagementCost - debtService)

	return models.CalculationResult{
		GrossYieldPercent:  grossYield,
		NetYieldPercent:    netYield,
		LoanAmount:         loan,
		MonthlyDebtService: debtService,
		MonthlyCashFlow:    cashFlow,
		AfaRatePercent:     rate,
		AnnualDepreciation: depreciation,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
