package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/logger"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/metrics"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/tax"
)

// Service-level errors
var (
	ErrInvalidTaxInput = errors.New("invalid tax input")
)

// TaxService defines the interface for income-tax business logic.
type TaxService interface {
	// CalculateIncomeTax computes the income-tax result for the given input.
	// Returns ErrInvalidTaxInput for non-positive income, negative children
	// count, or an unknown assessment type.
	CalculateIncomeTax(ctx context.Context, in models.TaxInput) (*models.TaxResult, error)
}

// taxService is the concrete implementation of TaxService.
type taxService struct {
	calc    *tax.Calculator
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewTaxService creates a new instance of TaxService.
func NewTaxService(calc *tax.Calculator, log *logger.Logger, m *metrics.Metrics) TaxService {
	return &taxService{
		calc:    calc,
		log:     log,
		metrics: m,
	}
}

// CalculateIncomeTax validates the input, runs the tariff calculation, and
// transforms calculator errors into the service-level error.
func (s *taxService) CalculateIncomeTax(ctx context.Context, in models.TaxInput) (*models.TaxResult, error) {
	if in.TaxableIncome <= 0 {
		s.log.Warn("Non-positive taxable income provided", map[string]interface{}{
			"taxable_income": in.TaxableIncome,
		})
		return nil, fmt.Errorf("%w: taxable income must be positive, got %v",
			ErrInvalidTaxInput, in.TaxableIncome)
	}
	if in.ChildrenCount < 0 {
		s.log.Warn("Negative children count provided", map[string]interface{}{
			"children_count": in.ChildrenCount,
		})
		return nil, fmt.Errorf("%w: children count must be non-negative, got %d",
			ErrInvalidTaxInput, in.ChildrenCount)
	}
	if !in.Assessment.Valid() {
		s.log.Warn("Unknown assessment type provided", map[string]interface{}{
			"assessment_type": string(in.Assessment),
		})
		return nil, fmt.Errorf("%w: unknown assessment type %q", ErrInvalidTaxInput, in.Assessment)
	}

	result, err := s.calc.Calculate(in)
	if err != nil {
		// Inputs are validated above, so a calculator error is unexpected.
		s.log.Error("Tax calculation failed", err, map[string]interface{}{
			"taxable_income":  in.TaxableIncome,
			"assessment_type": string(in.Assessment),
		})
		return nil, fmt.Errorf("failed to calculate income tax: %w", err)
	}

	s.log.Info("Income tax calculated", map[string]interface{}{
		"taxable_income":  in.TaxableIncome,
		"assessment_type": string(in.Assessment),
		"income_tax":      result.IncomeTax,
		"total_tax":       result.TotalTax,
	})

	if s.metrics != nil {
		s.metrics.IncTaxCalculations()
	}

	return &result, nil
}
