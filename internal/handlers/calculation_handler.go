package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/thomasstelzl1981/town-square-platform-sub021/internal/errors"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/middleware"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/services"
)

// CalculationHandler handles tax and investment calculation requests.
type CalculationHandler struct {
	taxService        services.TaxService
	investmentService services.InvestmentService
}

// NewCalculationHandler creates a new CalculationHandler instance.
func NewCalculationHandler(taxService services.TaxService, investmentService services.InvestmentService) *CalculationHandler {
	return &CalculationHandler{
		taxService:        taxService,
		investmentService: investmentService,
	}
}

// IncomeTaxRequest represents the body of the income-tax endpoint.
// Non-positive income is rejected at the binding already; a still-empty
// form on the client side must simply not call this endpoint.
type IncomeTaxRequest struct {
	TaxableIncome  float64 `json:"taxable_income" binding:"required,gt=0"`
	AssessmentType string  `json:"assessment_type" binding:"required,oneof=SINGLE SPLITTING"`
	ChurchTax      bool    `json:"church_tax"`
	ChildrenCount  int     `json:"children_count" binding:"gte=0"`
}

// IncomeTaxResponse represents the response of the income-tax endpoint.
type IncomeTaxResponse struct {
	Result *models.TaxResult `json:"result"`
}

// InvestmentRequest represents the body of the investment endpoint.
// The building share is derived from the land share, matching how the
// purchase documents state it.
type InvestmentRequest struct {
	PurchasePrice         float64  `json:"purchase_price" binding:"gte=0"`
	MonthlyRent           float64  `json:"monthly_rent" binding:"gte=0"`
	Equity                float64  `json:"equity" binding:"gte=0"`
	InterestRatePercent   float64  `json:"interest_rate_percent" binding:"gte=0"`
	RepaymentRatePercent  float64  `json:"repayment_rate_percent" binding:"gte=0"`
	AfaModel              string   `json:"afa_model" binding:"required,oneof=linear 7b 7h 7i"`
	AfaRateOverride       *float64 `json:"afa_rate_override" binding:"omitempty,gt=0"`
	LandSharePercent      float64  `json:"land_share_percent" binding:"gte=0,lte=100"`
	MonthlyManagementCost float64  `json:"monthly_management_cost" binding:"gte=0"`
}

// InvestmentResponse represents the response of the investment endpoint.
type InvestmentResponse struct {
	Result *models.CalculationResult `json:"result"`
}

// IncomeTax handles POST /api/v1/calculations/income-tax.
func (h *CalculationHandler) IncomeTax(c *gin.Context) {
	log := middleware.GetLogger(c)

	// Bind and validate the request body
	var req IncomeTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Check if it's a validation error
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		// Generic bad request for other binding errors
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing income-tax request", map[string]interface{}{
			"taxable_income":  req.TaxableIncome,
			"assessment_type": req.AssessmentType,
		})
	}

	// Call service layer
	result, err := h.taxService.CalculateIncomeTax(c.Request.Context(), models.TaxInput{
		TaxableIncome: req.TaxableIncome,
		Assessment:    models.AssessmentType(req.AssessmentType),
		ChurchTax:     req.ChurchTax,
		ChildrenCount: req.ChildrenCount,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidTaxInput) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to calculate income tax", err)
		return
	}

	c.JSON(http.StatusOK, IncomeTaxResponse{Result: result})
}

// Investment handles POST /api/v1/calculations/investment.
func (h *CalculationHandler) Investment(c *gin.Context) {
	log := middleware.GetLogger(c)

	// Bind and validate the request body
	var req InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing investment request", map[string]interface{}{
			"purchase_price": req.PurchasePrice,
			"afa_model":      req.AfaModel,
		})
	}

	// Call service layer
	result, err := h.investmentService.CalculateInvestment(c.Request.Context(), models.CalculationInput{
		PurchasePrice:         req.PurchasePrice,
		MonthlyRent:           req.MonthlyRent,
		Equity:                req.Equity,
		InterestRatePercent:   req.InterestRatePercent,
		RepaymentRatePercent:  req.RepaymentRatePercent,
		AfaModel:              models.AfaModel(req.AfaModel),
		AfaRateOverride:       req.AfaRateOverride,
		BuildingShare:         1 - req.LandSharePercent/100,
		MonthlyManagementCost: req.MonthlyManagementCost,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidInvestmentInput) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to calculate investment", err)
		return
	}

	c.JSON(http.StatusOK, InvestmentResponse{Result: result})
}
