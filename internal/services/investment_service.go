package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/investment"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/logger"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/metrics"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
)

// Service-level errors
var (
	ErrInvalidInvestmentInput = errors.New("invalid investment input")
)

// InvestmentService defines the interface for investment business logic.
type InvestmentService interface {
	// CalculateInvestment computes yield, cash-flow and depreciation figures.
	// A zero purchase price is allowed and yields zero figures; an unknown
	// AfA model or a building share outside [0,1] returns
	// ErrInvalidInvestmentInput.
	CalculateInvestment(ctx context.Context, in models.CalculationInput) (*models.CalculationResult, error)
}

// investmentService is the concrete implementation of InvestmentService.
type investmentService struct {
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewInvestmentService creates a new instance of InvestmentService.
func NewInvestmentService(log *logger.Logger, m *metrics.Metrics) InvestmentService {
	return &investmentService{
		log:     log,
		metrics: m,
	}
}

// CalculateInvestment validates the input and runs the calculation.
func (s *investmentService) CalculateInvestment(ctx context.Context, in models.CalculationInput) (*models.CalculationResult, error) {
	if !in.AfaModel.Valid() {
		s.log.Warn("Unknown AfA model provided", map[string]interface{}{
			"afa_model": string(in.AfaModel),
		})
		return nil, fmt.Errorf("%w: unknown AfA model %q", ErrInvalidInvestmentInput, in.AfaModel)
	}
	if in.BuildingShare < 0 || in.BuildingShare > 1 {
		s.log.Warn("Building share out of range", map[string]interface{}{
			"building_share": in.BuildingShare,
		})
		return nil, fmt.Errorf("%w: building share must be within [0,1], got %v",
			ErrInvalidInvestmentInput, in.BuildingShare)
	}
	if in.AfaRateOverride != nil && *in.AfaRateOverride <= 0 {
		s.log.Warn("Non-positive AfA rate override", map[string]interface{}{
			"afa_rate_override": *in.AfaRateOverride,
		})
		return nil, fmt.Errorf("%w: AfA rate override must be positive, got %v",
			ErrInvalidInvestmentInput, *in.AfaRateOverride)
	}

	result := investment.Calculate(in)

	s.log.Info("Investment calculated", map[string]interface{}{
		"purchase_price":      in.PurchasePrice,
		"afa_model":           string(in.AfaModel),
		"gross_yield_percent": result.GrossYieldPercent,
		"monthly_cash_flow":   result.MonthlyCashFlow,
	})

	if s.metrics != nil {
		s.metrics.IncInvestmentCalculations()
	}

	return &result, nil
}
