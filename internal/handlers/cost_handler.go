package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/thomasstelzl1981/town-square-platform-sub021/internal/errors"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/middleware"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/services"
)

// CostHandler handles cost-statement HTTP requests.
type CostHandler struct {
	service services.CostService
}

// NewCostHandler creates a new CostHandler instance.
func NewCostHandler(service services.CostService) *CostHandler {
	return &CostHandler{
		service: service,
	}
}

// BreakdownResponse represents the response for the cost-items endpoint.
type BreakdownResponse struct {
	StatementID string                       `json:"statement_id"`
	Breakdown   *services.StatementBreakdown `json:"breakdown"`
	Count       int                          `json:"count"`
}

// CostItems handles GET /api/v1/statements/:id/cost-items.
// It returns the statement's ledger merged with the category template.
func (h *CostHandler) CostItems(c *gin.Context) {
	log := middleware.GetLogger(c)
	tenantID := middleware.GetTenantID(c)

	statementID := c.Param("id")
	if _, err := uuid.Parse(statementID); err != nil {
		apierrors.BadRequest(c, "Statement id must be a valid UUID", nil)
		return
	}

	if log != nil {
		log.Info("Processing cost-items request", map[string]interface{}{
			"tenant_id":    tenantID,
			"statement_id": statementID,
		})
	}

	// Call service layer
	breakdown, err := h.service.GetStatementBreakdown(c.Request.Context(), tenantID, statementID)
	if err != nil {
		if errors.Is(err, services.ErrStatementNotFound) {
			apierrors.NotFound(c, "No cost statement found for this id")
			return
		}
		apierrors.InternalServerError(c, "Failed to load cost breakdown", err)
		return
	}

	c.JSON(http.StatusOK, BreakdownResponse{
		StatementID: statementID,
		Breakdown:   breakdown,
		Count:       len(breakdown.Items),
	})
}
