// Package allocation holds the Hausgeld cost-category catalog and the merge
// of stored ledger rows with that catalog. The catalog follows the BetrKV §2
// operating-cost categories, extended by the two WEG-specific positions
// (administration and maintenance reserve) that a Hausgeld statement carries.
// Property tax is deliberately absent: it is settled as a direct payment and
// never flows through this ledger.
package allocation

import "github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"

// GrundsteuerCode marks property-tax rows, which are always excluded from
// the template merge.
const GrundsteuerCode = "grundsteuer"

// TemplateSize is the number of categories in the fixed catalog.
const TemplateSize = 17

// hausgeldTemplate is the fixed category catalog, ordered by sort order.
var hausgeldTemplate = [TemplateSize]models.CostItem{
	{CategoryCode: "wasserversorgung", Label: "Wasserversorgung", KeyType: models.KeyConsumption, Apportionable: true, SortOrder: 1},
	{CategoryCode: "entwaesserung", Label: "Entwässerung", KeyType: models.KeyConsumption, Apportionable: true, SortOrder: 2},
	{CategoryCode: "heizung", Label: "Heizung", KeyType: models.KeyConsumption, Apportionable: true, SortOrder: 3},
	{CategoryCode: "warmwasser", Label: "Warmwasser", KeyType: models.KeyConsumption, Apportionable: true, SortOrder: 4},
	{CategoryCode: "aufzug", Label: "Aufzug", KeyType: models.KeyMEA, Apportionable: true, SortOrder: 5},
	{CategoryCode: "strassenreinigung", Label: "Straßenreinigung", KeyType: models.KeyAreaSqm, Apportionable: true, SortOrder: 6},
	{CategoryCode: "muellbeseitigung", Label: "Müllbeseitigung", KeyType: models.KeyPersons, Apportionable: true, SortOrder: 7},
	{CategoryCode: "gebaeudereinigung", Label: "Gebäudereinigung", KeyType: models.KeyAreaSqm, Apportionable: true, SortOrder: 8},
	{CategoryCode: "gartenpflege", Label: "Gartenpflege", KeyType: models.KeyAreaSqm, Apportionable: true, SortOrder: 9},
	{CategoryCode: "beleuchtung", Label: "Allgemeinstrom und Beleuchtung", KeyType: models.KeyAreaSqm, Apportionable: true, SortOrder: 10},
	{CategoryCode: "schornsteinreinigung", Label: "Schornsteinreinigung", KeyType: models.KeyUnitCount, Apportionable: true, SortOrder: 11},
	{CategoryCode: "versicherungen", Label: "Sach- und Haftpflichtversicherungen", KeyType: models.KeyAreaSqm, Apportionable: true, SortOrder: 12},
	{CategoryCode: "hauswart", Label: "Hauswart", KeyType: models.KeyAreaSqm, Apportionable: true, SortOrder: 13},
	{CategoryCode: "antenne_kabel", Label: "Gemeinschaftsantenne und Kabel", KeyType: models.KeyUnitCount, Apportionable: true, SortOrder: 14},
	{CategoryCode: "waeschepflege", Label: "Einrichtungen für die Wäschepflege", KeyType: models.KeyPersons, Apportionable: true, SortOrder: 15},
	{CategoryCode: "verwaltung", Label: "Verwaltung", KeyType: models.KeyMEA, Apportionable: false, SortOrder: 16},
	{CategoryCode: "instandhaltungsruecklage", Label: "Instandhaltungsrücklage", KeyType: models.KeyMEA, Apportionable: false, SortOrder: 17},
}

// Template returns a fresh copy of the Hausgeld category catalog with zero
// monetary values, sorted by sort order.
func Template() []models.CostItem {
	items := make([]models.CostItem, TemplateSize)
	copy(items, hausgeldTemplate[:])
	return items
}
