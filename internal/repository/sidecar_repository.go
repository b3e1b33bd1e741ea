package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/database"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
)

// SidecarVersion is one stored, immutable version of a document sidecar.
type SidecarVersion struct {
	DocumentID string
	Version    int
	Sidecar    models.DocumentSidecar
	CreatedAt  time.Time
}

// SidecarRepository defines the interface for sidecar persistence. Sidecars
// are append-only: a re-extraction inserts a new version, never an update.
type SidecarRepository interface {
	// Insert stores a new sidecar version for the document and returns the
	// version number it was assigned.
	Insert(ctx context.Context, tenantID, documentID string, sidecar *models.DocumentSidecar) (int, error)

	// GetLatest returns the newest sidecar version of a document.
	// Returns nil, nil if the document has no sidecar (not an error).
	GetLatest(ctx context.Context, tenantID, documentID string) (*SidecarVersion, error)

	// ListByReviewState returns the latest sidecar versions whose review
	// state matches, newest first. Returns an empty slice if none match.
	ListByReviewState(ctx context.Context, tenantID string, state models.ReviewState, limit int) ([]SidecarVersion, error)
}

// sidecarRepository is the concrete implementation of SidecarRepository.
type sidecarRepository struct {
	db *database.Database
}

// NewSidecarRepository creates a new instance of SidecarRepository.
func NewSidecarRepository(db *database.Database) SidecarRepository {
	return &sidecarRepository{
		db: db,
	}
}

// Insert appends the next version for the document. The version number is
// assigned inside the insert so concurrent ingests of the same document
// cannot allocate the same version twice (unique index on
// tenant_id, document_id, version backs this up).
func (r *sidecarRepository) Insert(ctx context.Context, tenantID, documentID string, sidecar *models.DocumentSidecar) (int, error) {
	payload, err := json.Marshal(sidecar)
	if err != nil {
		return 0, fmt.Errorf("failed to encode sidecar for document %s: %w", documentID, err)
	}

	query := `
		INSERT INTO document_sidecars (tenant_id, document_id, version, review_state, payload)
		SELECT $1, $2, COALESCE(MAX(version), 0) + 1, $3, $4
		FROM document_sidecars
		WHERE tenant_id = $1 AND document_id = $2
		RETURNING version
	`

	var version int
	err = r.db.Pool.QueryRow(ctx, query, tenantID, documentID, string(sidecar.ReviewState), payload).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sidecar for document %s: %w", documentID, err)
	}
	return version, nil
}

// GetLatest queries the newest sidecar version of a document.
func (r *sidecarRepository) GetLatest(ctx context.Context, tenantID, documentID string) (*SidecarVersion, error) {
	query := `
		SELECT document_id, version, payload, created_at
		FROM document_sidecars
		WHERE tenant_id = $1 AND document_id = $2
		ORDER BY version DESC
		LIMIT 1
	`

	var sv SidecarVersion
	var payload []byte

	err := r.db.Pool.QueryRow(ctx, query, tenantID, documentID).Scan(
		&sv.DocumentID,
		&sv.Version,
		&payload,
		&sv.CreatedAt,
	)

	// Handle no rows found - this is not an error at the repository level
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query sidecar for document %s: %w", documentID, err)
	}

	if err := json.Unmarshal(payload, &sv.Sidecar); err != nil {
		return nil, fmt.Errorf("failed to decode sidecar payload for document %s: %w", documentID, err)
	}

	return &sv, nil
}

// ListByReviewState returns the latest version per document, filtered by
// review state. The filter applies to the latest version only: an older
// NEEDS_REVIEW version superseded by an AUTO_ACCEPTED one must not linger
// in the review queue.
func (r *sidecarRepository) ListByReviewState(ctx context.Context, tenantID string, state models.ReviewState, limit int) ([]SidecarVersion, error) {
	query := `
		SELECT document_id, version, payload, created_at
		FROM (
			SELECT DISTINCT ON (document_id)
				document_id, version, review_state, payload, created_at
			FROM document_sidecars
			WHERE tenant_id = $1
			ORDER BY document_id, version DESC
		) latest
		WHERE review_state = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.db.Pool.Query(ctx, query, tenantID, string(state), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sidecars by review state %s: %w", state, err)
	}
	defer rows.Close()

	var results []SidecarVersion

	for rows.Next() {
		var sv SidecarVersion
		var payload []byte

		err := rows.Scan(&sv.DocumentID, &sv.Version, &payload, &sv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sidecar row: %w", err)
		}

		if err := json.Unmarshal(payload, &sv.Sidecar); err != nil {
			return nil, fmt.Errorf("failed to decode sidecar payload for document %s: %w", sv.DocumentID, err)
		}

		results = append(results, sv)
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sidecar rows: %w", err)
	}

	// Return empty slice if none found (not an error)
	if results == nil {
		results = []SidecarVersion{}
	}

	return results, nil
}
