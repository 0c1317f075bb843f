package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"github.com/sortetech/recarga-sorte-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntryHandler handles ticket entry HTTP requests
type EntryHandler struct {
	entryService services.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService services.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// GetEntryByID handles GET /entries/:id
func (h *EntryHandler) GetEntryByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	entry, err := h.entryService.GetEntryByID(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetEntriesByGameID handles GET /entries/game/:gameId
func (h *EntryHandler) GetEntriesByGameID(c *gin.Context) {
	gameID := c.Param("gameId")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.entryService.GetEntriesByGameID(c, gameID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get entries: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetEntriesByVerdict handles GET /entries/verdict/:verdict
func (h *EntryHandler) GetEntriesByVerdict(c *gin.Context) {
	verdict := models.Verdict(c.Param("verdict"))
	switch verdict {
	case models.VerdictValid, models.VerdictInvalid, models.VerdictUnknown:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verdict (expected VALID, INVALID or UNKNOWN)"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.entryService.GetEntriesByVerdict(c, verdict, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get entries: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetEntriesByDateRange handles GET /entries
func (h *EntryHandler) GetEntriesByDateRange(c *gin.Context) {
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format (YYYY-MM-DD)"})
		return
	}

	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format (YYYY-MM-DD)"})
		return
	}

	// Add one day to end date to include the end date in the range
	endDate = endDate.Add(24 * time.Hour)

	entries, err := h.entryService.GetEntriesByDateRange(c, startDate, endDate, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get entries: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// CreateEntry handles POST /entries
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var entry models.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.entryService.CreateEntry(c, &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntryCount handles GET /entries/count
func (h *EntryHandler) GetEntryCount(c *gin.Context) {
	count, err := h.entryService.GetEntryCount(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get entry count: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
