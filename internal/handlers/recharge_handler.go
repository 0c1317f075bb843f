package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"github.com/sortetech/recarga-sorte-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RechargeHandler handles recharge HTTP requests
type RechargeHandler struct {
	rechargeService services.RechargeService
}

// NewRechargeHandler creates a new RechargeHandler
func NewRechargeHandler(rechargeService services.RechargeService) *RechargeHandler {
	return &RechargeHandler{
		rechargeService: rechargeService,
	}
}

// GetRechargeByID handles GET /recharges/:id
func (h *RechargeHandler) GetRechargeByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	recharge, err := h.rechargeService.GetRechargeByID(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recharge not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, recharge)
}

// GetRechargesByGameID handles GET /recharges/game/:gameId
func (h *RechargeHandler) GetRechargesByGameID(c *gin.Context) {
	gameID := c.Param("gameId")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	recharges, err := h.rechargeService.GetRechargesByGameID(c, gameID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recharges: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, recharges)
}

// CreateRecharge handles POST /recharges
func (h *RechargeHandler) CreateRecharge(c *gin.Context) {
	var recharge models.Recharge
	if err := c.ShouldBindJSON(&recharge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rechargeService.CreateRecharge(c, &recharge); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recharge: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, recharge)
}

// GetRechargeCount handles GET /recharges/count
func (h *RechargeHandler) GetRechargeCount(c *gin.Context) {
	count, err := h.rechargeService.GetRechargeCount(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recharge count: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
