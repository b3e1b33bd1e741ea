package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/thomasstelzl1981/town-square-platform-sub021/internal/errors"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/middleware"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/repository"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/services"
)

// DocumentHandler handles document-sidecar HTTP requests.
type DocumentHandler struct {
	service services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler instance.
func NewDocumentHandler(service services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		service: service,
	}
}

// SidecarData represents a stored sidecar version in API responses.
type SidecarData struct {
	DocumentID  string                 `json:"document_id"`
	Version     int                    `json:"version"`
	ReviewState models.ReviewState     `json:"review_state"`
	Sidecar     models.DocumentSidecar `json:"sidecar"`
	CreatedAt   *time.Time             `json:"created_at,omitempty"`
}

// ReviewQueueRequest represents the query parameters of the review queue.
type ReviewQueueRequest struct {
	State string `form:"state" binding:"required,oneof=AUTO_ACCEPTED NEEDS_REVIEW UNASSIGNED"`
}

// ReviewQueueResponse represents the response of the review-queue endpoint.
type ReviewQueueResponse struct {
	Sidecars []SidecarData `json:"sidecars"`
	Count    int           `json:"count"`
}

// Ingest handles POST /api/v1/documents/:id/sidecars.
// The raw body is the extraction sidecar payload; it is parsed and
// validated by the service, which also derives the review state.
func (h *DocumentHandler) Ingest(c *gin.Context) {
	log := middleware.GetLogger(c)
	tenantID := middleware.GetTenantID(c)

	documentID := c.Param("id")
	if _, err := uuid.Parse(documentID); err != nil {
		apierrors.BadRequest(c, "Document id must be a valid UUID", nil)
		return
	}

	payload, err := c.GetRawData()
	if err != nil || len(payload) == 0 {
		apierrors.BadRequest(c, "Request body must contain a sidecar payload", nil)
		return
	}

	if log != nil {
		log.Info("Processing sidecar ingest", map[string]interface{}{
			"tenant_id":   tenantID,
			"document_id": documentID,
			"bytes":       len(payload),
		})
	}

	// Call service layer
	sv, err := h.service.IngestSidecar(c.Request.Context(), tenantID, documentID, payload)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSidecar) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to store sidecar", err)
		return
	}

	c.JSON(http.StatusCreated, mapSidecarVersionToDTO(sv))
}

// Latest handles GET /api/v1/documents/:id/sidecar.
// It returns the newest sidecar version of the document.
func (h *DocumentHandler) Latest(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	documentID := c.Param("id")
	if _, err := uuid.Parse(documentID); err != nil {
		apierrors.BadRequest(c, "Document id must be a valid UUID", nil)
		return
	}

	// Call service layer
	sv, err := h.service.GetLatestSidecar(c.Request.Context(), tenantID, documentID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			apierrors.NotFound(c, "No sidecar found for this document")
			return
		}
		apierrors.InternalServerError(c, "Failed to load sidecar", err)
		return
	}

	c.JSON(http.StatusOK, mapSidecarVersionToDTO(sv))
}

// ReviewQueue handles GET /api/v1/documents/review-queue.
// It lists the latest sidecars in the requested review state, newest first.
func (h *DocumentHandler) ReviewQueue(c *gin.Context) {
	log := middleware.GetLogger(c)
	tenantID := middleware.GetTenantID(c)

	// Bind and validate query parameters
	var req ReviewQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BadRequest(c, "state must be one of AUTO_ACCEPTED, NEEDS_REVIEW, UNASSIGNED", nil)
		return
	}

	if log != nil {
		log.Info("Processing review-queue request", map[string]interface{}{
			"tenant_id":    tenantID,
			"review_state": req.State,
		})
	}

	// Call service layer
	results, err := h.service.ListReviewQueue(c.Request.Context(), tenantID, models.ReviewState(req.State))
	if err != nil {
		if errors.Is(err, services.ErrInvalidReviewState) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to load review queue", err)
		return
	}

	sidecars := make([]SidecarData, 0, len(results))
	for i := range results {
		sidecars = append(sidecars, mapSidecarVersionToDTO(&results[i]))
	}

	c.JSON(http.StatusOK, ReviewQueueResponse{
		Sidecars: sidecars,
		Count:    len(sidecars),
	})
}

// mapSidecarVersionToDTO converts a stored sidecar version to its API shape.
func mapSidecarVersionToDTO(sv *repository.SidecarVersion) SidecarData {
	dto := SidecarData{
		DocumentID:  sv.DocumentID,
		Version:     sv.Version,
		ReviewState: sv.Sidecar.ReviewState,
		Sidecar:     sv.Sidecar,
	}
	if !sv.CreatedAt.IsZero() {
		createdAt := sv.CreatedAt
		dto.CreatedAt = &createdAt
	}
	return dto
}
