package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/docmatch"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/logger"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/metrics"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/repository"
)

// Service-level errors
var (
	ErrDocumentNotFound   = errors.New("document sidecar not found")
	ErrInvalidSidecar     = errors.New("invalid sidecar payload")
	ErrInvalidReviewState = errors.New("unknown review state")
)

// Maximum number of sidecars returned from a review-queue query
const maxReviewQueueResults = 50

// DocumentService defines the interface for document-sidecar business logic.
type DocumentService interface {
	// IngestSidecar parses an extraction sidecar payload, derives its review
	// state from the entity-match confidences, and stores it as a new
	// immutable version for the document.
	// Returns ErrInvalidSidecar for malformed payloads or out-of-range
	// confidences.
	IngestSidecar(ctx context.Context, tenantID, documentID string, payload []byte) (*repository.SidecarVersion, error)

	// GetLatestSidecar returns the newest sidecar version of a document.
	// Returns ErrDocumentNotFound if the document has no sidecar.
	GetLatestSidecar(ctx context.Context, tenantID, documentID string) (*repository.SidecarVersion, error)

	// ListReviewQueue returns the latest sidecars in the given review state,
	// newest first. Returns ErrInvalidReviewState for unknown states.
	ListReviewQueue(ctx context.Context, tenantID string, state models.ReviewState) ([]repository.SidecarVersion, error)
}

// documentService is the concrete implementation of DocumentService.
type documentService struct {
	repo    repository.SidecarRepository
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewDocumentService creates a new instance of DocumentService.
func NewDocumentService(repo repository.SidecarRepository, log *logger.Logger, m *metrics.Metrics) DocumentService {
	return &documentService{
		repo:    repo,
		log:     log,
		metrics: m,
	}
}

// IngestSidecar parses, classifies and persists a sidecar.
func (s *documentService) IngestSidecar(ctx context.Context, tenantID, documentID string, payload []byte) (*repository.SidecarVersion, error) {
	sidecar, err := models.ParseSidecar(payload)
	if err != nil {
		s.log.Warn("Rejected sidecar payload", map[string]interface{}{
			"tenant_id":   tenantID,
			"document_id": documentID,
			"reason":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrInvalidSidecar, err)
	}

	state, err := docmatch.DeriveReviewState(sidecar.EntityMatches)
	if err != nil {
		s.log.Warn("Rejected sidecar match confidence", map[string]interface{}{
			"tenant_id":   tenantID,
			"document_id": documentID,
			"reason":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrInvalidSidecar, err)
	}
	sidecar.ReviewState = state

	version, err := s.repo.Insert(ctx, tenantID, documentID, sidecar)
	if err != nil {
		s.log.Error("Failed to store sidecar", err, map[string]interface{}{
			"tenant_id":   tenantID,
			"document_id": documentID,
		})
		return nil, fmt.Errorf("failed to store sidecar: %w", err)
	}

	s.log.Info("Sidecar ingested", map[string]interface{}{
		"tenant_id":    tenantID,
		"document_id":  documentID,
		"version":      version,
		"review_state": string(state),
	})

	if s.metrics != nil {
		s.metrics.IncSidecarsIngested(string(state))
	}

	return &repository.SidecarVersion{
		DocumentID: documentID,
		Version:    version,
		Sidecar:    *sidecar,
	}, nil
}

// GetLatestSidecar retrieves the newest sidecar version of a document.
func (s *documentService) GetLatestSidecar(ctx context.Context, tenantID, documentID string) (*repository.SidecarVersion, error) {
	sv, err := s.repo.GetLatest(ctx, tenantID, documentID)
	if err != nil {
		s.log.Error("Failed to query sidecar", err, map[string]interface{}{
			"tenant_id":   tenantID,
			"document_id": documentID,
		})
		return nil, fmt.Errorf("failed to query sidecar: %w", err)
	}

	// Repository returns nil, nil when no sidecar found - transform to domain error
	if sv == nil {
		s.log.Debug("No sidecar found for document", map[string]interface{}{
			"tenant_id":   tenantID,
			"document_id": documentID,
		})
		return nil, ErrDocumentNotFound
	}

	return sv, nil
}

// ListReviewQueue lists the latest sidecars in the given review state.
func (s *documentService) ListReviewQueue(ctx context.Context, tenantID string, state models.ReviewState) ([]repository.SidecarVersion, error) {
	if !state.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReviewState, state)
	}

	results, err := s.repo.ListByReviewState(ctx, tenantID, state, maxReviewQueueResults)
	if err != nil {
		s.log.Error("Failed to query review queue", err, map[string]interface{}{
			"tenant_id":    tenantID,
			"review_state": string(state),
		})
		return nil, fmt.Errorf("failed to query review queue: %w", err)
	}

	s.log.Info("Review queue served", map[string]interface{}{
		"tenant_id":    tenantID,
		"review_state": string(state),
		"count":        len(results),
	})

	return results, nil
}
