package models

// AllocationKey identifies how a cost category is apportioned across units.
type AllocationKey string

const (
	// KeyPersons allocates by the number of persons per unit.
	KeyPersons AllocationKey = "persons"
	// KeyAreaSqm allocates by living area in square meters.
	KeyAreaSqm AllocationKey = "area_sqm"
	// KeyConsumption allocates by metered consumption.
	KeyConsumption AllocationKey = "consumption"
	// KeyMEA allocates by co-ownership share (Miteigentumsanteil).
	KeyMEA AllocationKey = "mea"
	// KeyUnitCount allocates equally per unit.
	KeyUnitCount AllocationKey = "unit_count"
)

// CostItem is one row of a utility-cost breakdown: either a stored ledger
// row or a zero-value placeholder synthesized from the category template.
type CostItem struct {
	CategoryCode     string        `json:"category_code"`
	Label            string        `json:"label"`
	AmountTotalHouse float64       `json:"amount_total_house"`
	AmountUnit       float64       `json:"amount_unit"`
	KeyType          AllocationKey `json:"key_type"`
	Apportionable    bool          `json:"apportionable"`
	SortOrder        int           `json:"sort_order"`
}
