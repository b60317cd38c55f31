package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// IncomeHandler handles income-source requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeSourceRequest represents the request payload for an income source.
type CreateIncomeSourceRequest struct {
	Name        string                 `json:"name" binding:"required,min=1,max=100"`
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Frequency   models.IncomeFrequency `json:"frequency" binding:"required,income_frequency"`
	Description *string                `json:"description" binding:"omitempty,max=500"`
}

// CreateIncomeSource handles recording a new income source.
// @Summary     Create an income source
// @Description Record a recurring income stream
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeSourceRequest true "Income source details"
// @Success     201 {object} models.IncomeSource "Income source created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [post]
func (h *IncomeHandler) CreateIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.incomeService.CreateIncomeSource(userID, req.Name, req.Amount, req.Frequency, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INCOME_SOURCE", "income_source", source.ID, c.ClientIP(),
		map[string]interface{}{"name": source.Name, "amount": req.Amount, "frequency": req.Frequency})

	c.JSON(http.StatusCreated, gin.H{"income_source": source})
}

// GetIncomeSources handles listing the user's income sources.
// @Summary     Get income sources
// @Description Get all income sources of the authenticated user
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.IncomeSource "Income sources"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [get]
func (h *IncomeHandler) GetIncomeSources(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sources, err := h.incomeService.GetUserIncomeSources(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_sources": sources})
}

// GetIncomeSource handles retrieving a specific income source.
// @Summary     Get income source by ID
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income source ID"
// @Success     200 {object} models.IncomeSource "Income source details"
// @Failure     400 {object} ErrorResponse "Invalid income source ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [get]
func (h *IncomeHandler) GetIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	source, err := h.incomeService.GetIncomeSourceByID(userID, sourceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_source": source})
}

// DeleteIncomeSource handles deleting an income source.
// @Summary     Delete income source
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income source ID"
// @Success     200 {object} MessageResponse "Income source deleted"
// @Failure     400 {object} ErrorResponse "Invalid income source ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [delete]
func (h *IncomeHandler) DeleteIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncomeSource(userID, sourceID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INCOME_SOURCE", "income_source", sourceID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income source deleted successfully"})
}
