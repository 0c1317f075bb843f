package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sortetech/recarga-sorte-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationHandler handles validation run HTTP requests
type ValidationHandler struct {
	validationService services.ValidationService
}

// NewValidationHandler creates a new ValidationHandler
func NewValidationHandler(validationService services.ValidationService) *ValidationHandler {
	return &ValidationHandler{
		validationService: validationService,
	}
}

// RunValidation handles POST /validation/run
func (h *ValidationHandler) RunValidation(c *gin.Context) {
	run, err := h.validationService.RunValidation(c)
	if err != nil {
		// The run record (with FAILED status) is still returned so the
		// dashboard can surface the configuration error.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Validation run failed: " + err.Error(), "run": run})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetRunByID handles GET /validation/runs/:id
func (h *ValidationHandler) GetRunByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	run, err := h.validationService.GetRunByID(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Validation run not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetRuns handles GET /validation/runs
func (h *ValidationHandler) GetRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	runs, err := h.validationService.GetRuns(c, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get validation runs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, runs)
}

// GetLatestReport handles GET /validation/report
func (h *ValidationHandler) GetLatestReport(c *gin.Context) {
	report, err := h.validationService.GetLatestReport(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
