package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/allocation"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/logger"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/metrics"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/repository"
)

// Service-level errors
var (
	ErrStatementNotFound = errors.New("cost statement not found")
)

// StatementBreakdown is a cost statement's ledger merged with the category
// template, plus the totals derived from it.
type StatementBreakdown struct {
	Items                 []models.CostItem `json:"items"`
	ApportionableTotal    float64           `json:"apportionable_total"`
	NonApportionableTotal float64           `json:"non_apportionable_total"`
}

// CostService defines the interface for cost-statement business logic.
type CostService interface {
	// GetStatementBreakdown loads the ledger rows of a statement and merges
	// them with the fixed category template.
	// Returns ErrStatementNotFound if the statement does not exist for the
	// tenant; an existing statement with an empty ledger still yields the
	// full template breakdown.
	GetStatementBreakdown(ctx context.Context, tenantID, statementID string) (*StatementBreakdown, error)
}

// costService is the concrete implementation of CostService.
type costService struct {
	repo    repository.CostItemRepository
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewCostService creates a new instance of CostService.
func NewCostService(repo repository.CostItemRepository, log *logger.Logger, m *metrics.Metrics) CostService {
	return &costService{
		repo:    repo,
		log:     log,
		metrics: m,
	}
}

// GetStatementBreakdown retrieves and merges the cost breakdown.
func (s *costService) GetStatementBreakdown(ctx context.Context, tenantID, statementID string) (*StatementBreakdown, error) {
	exists, err := s.repo.StatementExists(ctx, tenantID, statementID)
	if err != nil {
		s.log.Error("Failed to check cost statement", err, map[string]interface{}{
			"tenant_id":    tenantID,
			"statement_id": statementID,
		})
		return nil, fmt.Errorf("failed to check cost statement: %w", err)
	}
	if !exists {
		s.log.Debug("Cost statement not found", map[string]interface{}{
			"tenant_id":    tenantID,
			"statement_id": statementID,
		})
		return nil, ErrStatementNotFound
	}

	items, err := s.repo.ListByStatement(ctx, tenantID, statementID)
	if err != nil {
		s.log.Error("Failed to load cost items", err, map[string]interface{}{
			"tenant_id":    tenantID,
			"statement_id": statementID,
		})
		return nil, fmt.Errorf("failed to load cost items: %w", err)
	}

	merged, err := allocation.MergeWithTemplate(items)
	if err != nil {
		// Duplicate category codes mean the stored ledger is corrupt.
		s.log.Error("Cost item merge failed", err, map[string]interface{}{
			"tenant_id":    tenantID,
			"statement_id": statementID,
			"item_count":   len(items),
		})
		return nil, fmt.Errorf("failed to merge cost items: %w", err)
	}

	apportionable := allocation.SumApportionable(merged)
	var total float64
	for _, item := range merged {
		total += item.AmountTotalHouse
	}

	s.log.Info("Cost statement breakdown served", map[string]interface{}{
		"tenant_id":    tenantID,
		"statement_id": statementID,
		"row_count":    len(merged),
	})

	if s.metrics != nil {
		s.metrics.IncStatementMerges()
	}

	return &StatementBreakdown{
		Items:                 merged,
		ApportionableTotal:    apportionable,
		NonApportionableTotal: total - apportionable,
	}, nil
}
