package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ehson200611/Chocoberryy/internal/auth"
	"github.com/ehson200611/Chocoberryy/internal/db"
	"github.com/ehson200611/Chocoberryy/internal/models"
)

// GET /api/orders
//
// The authenticated user's order history, newest first.
func OrderHistory(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var orders []models.Order
	err := db.DB.
		Preload("Items").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
