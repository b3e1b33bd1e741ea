package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/database"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
)

// CostItemRepository defines the interface for cost-ledger data access.
// All reads and writes are tenant-scoped.
type CostItemRepository interface {
	// StatementExists reports whether the cost statement exists for the tenant.
	StatementExists(ctx context.Context, tenantID, statementID string) (bool, error)

	// ListByStatement returns all ledger rows of a cost statement, ordered by
	// sort order. Returns an empty slice if the statement has no rows yet.
	// Returns error only for actual database failures.
	ListByStatement(ctx context.Context, tenantID, statementID string) ([]models.CostItem, error)

	// ReplaceForStatement atomically replaces the ledger rows of a statement.
	ReplaceForStatement(ctx context.Context, tenantID, statementID string, items []models.CostItem) error
}

// costItemRepository is the concrete implementation of CostItemRepository.
type costItemRepository struct {
	db *database.Database
}

// NewCostItemRepository creates a new instance of CostItemRepository.
func NewCostItemRepository(db *database.Database) CostItemRepository {
	return &costItemRepository{
		db: db,
	}
}

// StatementExists checks the cost_statements table for the statement.
func (r *costItemRepository) StatementExists(ctx context.Context, tenantID, statementID string) (bool, error) {
	query := `
		SELECT 1
		FROM cost_statements
		WHERE tenant_id = $1 AND id = $2
	`

	var one int
	err := r.db.Pool.QueryRow(ctx, query, tenantID, statementID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check statement %s: %w", statementID, err)
	}
	return true, nil
}

// ListByStatement queries the ledger rows of a cost statement.
func (r *costItemRepository) ListByStatement(ctx context.Context, tenantID, statementID string) ([]models.CostItem, error) {
	query := `
		SELECT
			category_code,
			label,
			amount_total_house,
			amount_unit,
			key_type,
			apportionable,
			sort_order
		FROM cost_items
		WHERE tenant_id = $1 AND statement_id = $2
		ORDER BY sort_order
	`

	rows, err := r.db.Pool.Query(ctx, query, tenantID, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost items for statement %s: %w", statementID, err)
	}
	defer rows.Close()

	var items []models.CostItem

	for rows.Next() {
		var item models.CostItem
		var keyType string

		err := rows.Scan(
			&item.CategoryCode,
			&item.Label,
			&item.AmountTotalHouse,
			&item.AmountUnit,
			&keyType,
			&item.Apportionable,
			&item.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost item row: %w", err)
		}
		item.KeyType = models.AllocationKey(keyType)

		items = append(items, item)
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cost item rows: %w", err)
	}

	// Return empty slice if no rows found (not an error)
	if items == nil {
		items = []models.CostItem{}
	}

	return items, nil
}

// ReplaceForStatement deletes and re-inserts the rows of a statement in one
// transaction.
func (r *costItemRepository) ReplaceForStatement(ctx context.Context, tenantID, statementID string, items []models.CostItem) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM cost_items WHERE tenant_id = $1 AND statement_id = $2`,
		tenantID, statementID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear cost items for statement %s: %w", statementID, err)
	}

	insert := `
		INSERT INTO cost_items (
			tenant_id, statement_id, category_code, label,
			amount_total_house, amount_unit, key_type, apportionable, sort_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, item := range items {
		_, err := tx.Exec(ctx, insert,
			tenantID, statementID, item.CategoryCode, item.Label,
			item.AmountTotalHouse, item.AmountUnit, string(item.KeyType), item.Apportionable, item.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cost item %s: %w", item.CategoryCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cost item replacement: %w", err)
	}
	return nil
}
