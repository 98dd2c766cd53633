package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers/business"
	"assetpool/internal/models"
	dbconfig "assetpool/pkg/config"
)

// CreateAssetRequest registers an asset in the ownership registry.
type CreateAssetRequest struct {
	Name  string `json:"name" binding:"required"`
	Owner string `json:"owner" binding:"required"`
}

// ListAssetRequest offers an asset for sale to one authorized buyer.
type ListAssetRequest struct {
	AssetID         uint   `json:"asset_id" binding:"required"`
	Seller          string `json:"seller" binding:"required"`
	Price           int64  `json:"price" binding:"required"`
	AuthorizedBuyer string `json:"authorized_buyer" binding:"required"`
}

// ListAssets returns all registry entries.
func ListAssets(c *gin.Context) {
	var assets []models.Asset
	if err := dbconfig.DB.Find(&assets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assets)
}

// GetAsset returns one registry entry.
func GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var asset models.Asset
	if err := dbconfig.DB.First(&asset, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, asset)
}

// CreateAsset registers a new asset.
func CreateAsset(c *gin.Context) {
	var request CreateAssetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	asset := models.Asset{Name: request.Name, Owner: request.Owner}
	if err := dbconfig.DB.Create(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// CreateListing puts an asset up for sale on the venue.
func CreateListing(c *gin.Context) {
	var request ListAssetRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	listing, err := business.ListAsset(dbconfig.DB, request.AssetID, request.Seller,
		request.Price, request.AuthorizedBuyer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// GetListing returns the venue listing for an asset.
func GetListing(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var listing models.Listing
	if err := dbconfig.DB.Where("asset_id = ?", assetID).First(&listing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}
