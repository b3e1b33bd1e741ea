package allocation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
)

// ErrDuplicateCategory is returned when the ledger input carries two rows
// with the same category code. The ledger is expected to be unique per
// category; a duplicate means corrupt input and is rejected instead of
// being silently collapsed.
var ErrDuplicateCategory = errors.New("duplicate category code")

// MergeWithTemplate merges stored ledger rows into the fixed category
// catalog. Every template category appears exactly once: the ledger row if
// one exists, otherwise a zero-value placeholder. Ledger rows outside the
// template are appended, except property-tax rows, which are always
// excluded. The result is sorted by sort order ascending.
func MergeWithTemplate(items []models.CostItem) ([]models.CostItem, error) {
	byCode := make(map[string]models.CostItem, len(items))
	for _, item := range items {
		if item.CategoryCode == GrundsteuerCode {
			continue
		}
		if _, exists := byCode[item.CategoryCode]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, item.CategoryCode)
		}
		byCode[item.CategoryCode] = item
	}

	merged := make([]models.CostItem, 0, TemplateSize+len(items))
	inTemplate := make(map[string]bool, TemplateSize)

	for _, tpl := range hausgeldTemplate {
		inTemplate[tpl.CategoryCode] = true
		row, ok := byCode[tpl.CategoryCode]
		if !ok {
			merged = append(merged, tpl)
			continue
		}
		// Ledger amounts win; catalog metadata stays authoritative for
		// label, allocation key, apportionability and position.
		row.Label = tpl.Label
		row.KeyType = tpl.KeyType
		row.Apportionable = tpl.Apportionable
		row.SortOrder = tpl.SortOrder
		merged = append(merged, row)
	}

	// Append off-template rows in input order so the final sort is stable
	// for rows sharing a sort order.
	for _, item := range items {
		if item.CategoryCode == GrundsteuerCode || inTemplate[item.CategoryCode] {
			continue
		}
		merged = append(merged, item)
	}

	slices.SortStableFunc(merged, func(a, b models.CostItem) int {
		return a.SortOrder - b.SortOrder
	})

	return merged, nil
}

// SumApportionable totals the house amounts of all apportionable rows.
func SumApportionable(items []models.CostItem) float64 {
	var total float64
	for _, item := range items {
		if item.Apportionable {
			total += item.AmountTotalHouse
		}
	}
	return total
}
