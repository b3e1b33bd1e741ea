package models

// AssessmentType selects the income-tax computation method.
type AssessmentType string

const (
	// AssessmentSingle applies the tariff to the full taxable income.
	AssessmentSingle AssessmentType = "SINGLE"
	// AssessmentSplitting applies the joint-filing method: tax on half the
	// income, doubled (Splittingverfahren).
	AssessmentSplitting AssessmentType = "SPLITTING"
)

// Valid reports whether the assessment type is one of the known values.
func (a AssessmentType) Valid() bool {
	return a == AssessmentSingle || a == AssessmentSplitting
}

// TaxInput carries all parameters for one income-tax calculation.
// It has no identity and no lifecycle; a fresh value is built per call.
type TaxInput struct {
	TaxableIncome float64        `json:"taxable_income"`
	Assessment    AssessmentType `json:"assessment_type"`
	ChurchTax     bool           `json:"church_tax"`
	ChildrenCount int            `json:"children_count"`
}

// TaxResult is the derived, immutable outcome of a tax calculation.
// Monetary amounts are in euros; rates are percentages.
type TaxResult struct {
	MarginalTaxRate     float64 `json:"marginal_tax_rate"`
	EffectiveTaxRate    float64 `json:"effective_tax_rate"`
	IncomeTax           float64 `json:"income_tax"`
	SolidaritySurcharge float64 `json:"solidarity_surcharge"`
	ChurchTax           float64 `json:"church_tax"`
	TotalTax            float64 `json:"total_tax"`
	ChildAllowanceUsed  bool    `json:"child_allowance_used"`
}
