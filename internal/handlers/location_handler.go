package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ehson200611/Chocoberryy/internal/db"
	"github.com/ehson200611/Chocoberryy/internal/models"
)

// GET /api/locations
func ListLocations(c *gin.Context) {
	var locations []models.Location
	if err := db.DB.Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": locations})
}
