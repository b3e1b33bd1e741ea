package models

// AfaModel selects the depreciation schedule applied to the building share
// of the purchase price.
type AfaModel string

const (
	// AfaLinear is the standard straight-line building depreciation (§7 Abs. 4 EStG).
	AfaLinear AfaModel = "linear"
	// Afa7b is the declining depreciation for new residential buildings (§7b EStG).
	Afa7b AfaModel = "7b"
	// Afa7h is the increased depreciation in redevelopment areas (§7h EStG).
	Afa7h AfaModel = "7h"
	// Afa7i is the increased depreciation for listed buildings (§7i EStG).
	Afa7i AfaModel = "7i"
)

// Valid reports whether the AfA model is one of the known values.
func (m AfaModel) Valid() bool {
	switch m {
	case AfaLinear, Afa7b, Afa7h, Afa7i:
		return true
	}
	return false
}

// CalculationInput carries all parameters for one investment calculation.
// BuildingShare is a fraction in [0,1], derived as 1 - landSharePercent/100.
type CalculationInput struct {
	PurchasePrice         float64  `json:"purchase_price"`
	MonthlyRent           float64  `json:"monthly_rent"`
	Equity                float64  `json:"equity"`
	InterestRatePercent   float64  `json:"interest_rate_percent"`
	RepaymentRatePercent  float64  `json:"repayment_rate_percent"`
	AfaModel              AfaModel `json:"afa_model"`
	AfaRateOverride       *float64 `json:"afa_rate_override,omitempty"`
	BuildingShare         float64  `json:"building_share"`
	MonthlyManagementCost float64  `json:"monthly_management_cost"`
}

// CalculationResult is the derived outcome of an investment calculation.
// Yields are in percent, amounts in euros.
type CalculationResult struct {
	GrossYieldPercent  float64 `json:"gross_yield_percent"`
	NetYieldPercent    float64 `json:"net_yield_percent"`
	LoanAmount         float64 `json:"loan_amount"`
	MonthlyDebtService float64 `json:"monthly_debt_service"`
	MonthlyCashFlow    float64 `json:"monthly_cash_flow"`
	AfaRatePercent     float64 `json:"afa_rate_percent"`
	AnnualDepreciation float64 `json:"annual_depreciation"`
}
