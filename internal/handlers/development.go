package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assetpool/internal/models"
	dbconfig "assetpool/pkg/config"
)

// ListDevelopmentRecords returns all development records.
func ListDevelopmentRecords(c *gin.Context) {
	var records []models.DevelopmentRecord
	if err := dbconfig.DB.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetDevelopmentRecord returns the record for an asset with its computed
// deadline.
func GetDevelopmentRecord(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var record models.DevelopmentRecord
	if err := dbconfig.DB.Where("asset_id = ?", assetID).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record, "deadline": record.Deadline()})
}
