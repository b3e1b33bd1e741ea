// Package tax implements the German income-tax tariff (§32a EStG) with the
// joint-filing splitting method, solidarity surcharge, church tax, and the
// per-child allowance. All functions are pure; money is handled as float64
// euros with rounding applied only at statutory boundaries.
package tax

import (
	"errors"
	"fmt"
	"math"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
)

// 2024 tariff constants (§32a Abs. 1 EStG).
const (
	basicAllowance = 11604.0
	zone2Upper     = 17005.0
	zone3Upper     = 66760.0
	zone4Upper     = 277825.0

	zone2QuadCoeff = 922.98
	zone2LinCoeff  = 1400.0
	zone3QuadCoeff = 181.19
	zone3LinCoeff  = 2397.0
	zone3Offset    = 1025.38
	zone4Rate      = 0.42
	zone4Offset    = 10602.13
	zone5Rate      = 0.45
	zone5Offset    = 18936.88
)

// Solidarity surcharge constants for 2024 (§3, §4 SolzG).
const (
	soliRate            = 0.055
	soliExemptionSingle = 18130.0
	soliExemptionJoint  = 36260.0
	soliMilderZoneRate  = 0.119
)

// Child allowance per child for 2024 (§32 Abs. 6 EStG). The full allowance
// applies to joint assessment; single assessment gets half.
const (
	childAllowanceJoint  = 9312.0
	childAllowanceSingle = 4656.0
)

// Sentinel errors.
var (
	ErrNonPositiveIncome    = errors.New("taxable income must be positive")
	ErrNegativeChildren     = errors.New("children count must be non-negative")
	ErrUnknownAssessment    = errors.New("unknown assessment type")
	ErrUnsupportedTaxYear   = errors.New("unsupported tax year")
	ErrInvalidChurchTaxRate = errors.New("church tax rate must be 8 or 9 percent")
)

// SupportedYear is the tax year the tariff constants above belong to.
const SupportedYear = 2024

// Params configures a Calculator.
type Params struct {
	// Year selects the tariff; only SupportedYear is implemented.
	Year int
	// ChurchTaxRatePercent is the state-dependent church tax rate (8 or 9).
	ChurchTaxRatePercent float64
}

// Calculator computes income-tax results for a fixed set of params.
type Calculator struct {
	params Params
}

// NewCalculator validates the params and returns a Calculator.
func NewCalculator(params Params) (*Calculator, error) {
	if params.Year != SupportedYear {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTaxYear, params.Year)
	}
	if params.ChurchTaxRatePercent != 8 && params.ChurchTaxRatePercent != 9 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidChurchTaxRate, params.ChurchTaxRatePercent)
	}
	return &Calculator{params: params}, nil
}

// Calculate maps a TaxInput to a TaxResult. It is deterministic and has no
// side effects. Callers are expected to guard against non-positive income;
// the function rejects it with ErrNonPositiveIncome rather than defining
// behavior for it.
func (c *Calculator) Calculate(in models.TaxInput) (models.TaxResult, error) {
	if in.TaxableIncome <= 0 {
		return models.TaxResult{}, ErrNonPositiveIncome
	}
	if in.ChildrenCount < 0 {
		return models.TaxResult{}, ErrNegativeChildren
	}
	if !in.Assessment.Valid() {
		return models.TaxResult{}, fmt.Errorf("%w: %q", ErrUnknownAssessment, in.Assessment)
	}

	allowancePerChild := childAllowanceSingle
	if in.Assessment == models.AssessmentSplitting {
		allowancePerChild = childAllowanceJoint
	}
	base := in.TaxableIncome - float64(in.ChildrenCount)*allowancePerChild
	if base < 0 {
		base = 0
	}

	var incomeTax, marginal float64
	if in.Assessment == models.AssessmentSplitting {
		// Splittingverfahren: tax on half the base, doubled. The marginal
		// rate of the doubled tariff is the bracket derivative at the half.
		incomeTax = 2 * Tariff(base/2)
		marginal = MarginalRate(base / 2)
	} else {
		incomeTax = Tariff(base)
		marginal = MarginalRate(base)
	}

	soli := c.solidaritySurcharge(incomeTax, in.Assessment)

	var church float64
	if in.ChurchTax {
		church = roundCents(incomeTax * c.params.ChurchTaxRatePercent / 100)
	}

	return models.TaxResult{
		MarginalTaxRate:     marginal * 100,
		EffectiveTaxRate:    incomeTax / in.TaxableIncome * 100,
		IncomeTax:           incomeTax,
		SolidaritySurcharge: soli,
		ChurchTax:           church,
		TotalTax:            incomeTax + soli + church,
		ChildAllowanceUsed:  in.ChildrenCount > 0,
	}, nil
}

// Tariff evaluates the §32a bracket formula for a single taxable income.
// The base and the resulting tax are both floored to whole euros, matching
// the statutory rounding rules.
func Tariff(taxableIncome float64) float64 {
	zvE := math.Floor(taxableIncome)
	if zvE <= basicAllowance {
		return 0
	}

	var t float64
	switch {
	case zvE <= zone2Upper:
		y := (zvE - basicAllowance) / 10000
		t = (zone2QuadCoeff*y + zone2LinCoeff) * y
	case zvE <= zone3Upper:
		z := (zvE - zone2Upper) / 10000
		t = (zone3QuadCoeff*z+zone3LinCoeff)*z + zone3Offset
	case zvE <= zone4Upper:
		t = zone4Rate*zvE - zone4Offset
	default:
		t = zone5Rate*zvE - zone5Offset
	}
	return math.Floor(t)
}

// MarginalRate is the derivative of the tariff at the given taxable income,
// as a fraction (0.42 for the 42% bracket).
func MarginalRate(taxableIncome float64) float64 {
	zvE := math.Floor(taxableIncome)
	switch {
	case zvE <= basicAllowance:
		return 0
	case zvE <= zone2Upper:
		y := (zvE - basicAllowance) / 10000
		return (2*zone2QuadCoeff*y + zone2LinCoeff) / 10000
	case zvE <= zone3Upper:
		z := (zvE - zone2Upper) / 10000
		return (2*zone3QuadCoeff*z + zone3LinCoeff) / 10000
	case zvE <= zone4Upper:
		return zone4Rate
	default:
		return zone5Rate
	}
}

// solidaritySurcharge applies the 5.5% surcharge above the exemption
// threshold, with the statutory milder zone smoothing the entry.
func (c *Calculator) solidaritySurcharge(incomeTax float64, assessment models.AssessmentType) float64 {
	exemption := soliExemptionSingle
	if assessment == models.AssessmentSplitting {
		exemption = soliExemptionJoint
	}
	if incomeTax <= exemption {
		return 0
	}
	soli := math.Min(soliRate*incomeTax, soliMilderZoneRate*(incomeTax-exemption))
	return roundCents(soli)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
