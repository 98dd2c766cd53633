package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers/business"
	"assetpool/internal/models"
	dbconfig "assetpool/pkg/config"
)

// CreatePoolRequest creates a funding pool for an asset.
type CreatePoolRequest struct {
	AssetID      uint  `json:"asset_id" binding:"required"`
	TargetAmount int64 `json:"target_amount" binding:"required"`
}

// ContributeRequest stakes funding units into a pool.
type ContributeRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
}

// AddressRequest identifies the acting contributor.
type AddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// PenaltyRequest updates the withdrawal penalty settings (owner role).
type PenaltyRequest struct {
	Caller  string `json:"caller" binding:"required"`
	Rate    *int64 `json:"rate"`
	Enabled *bool  `json:"enabled"`
}

// CustodyRequest moves asset custody (operator role).
type CustodyRequest struct {
	Caller string `json:"caller" binding:"required"`
	To     string `json:"to" binding:"required"`
}

func poolID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

// ListPools returns all pools.
func ListPools(c *gin.Context) {
	var pools []models.Pool
	if err := dbconfig.DB.Find(&pools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pools)
}

// GetPool returns one pool by id.
func GetPool(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var pool models.Pool
	if err := dbconfig.DB.First(&pool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, pool)
}

// CreatePool registers a new pool for an asset.
func CreatePool(c *gin.Context) {
	var request CreatePoolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pool, err := business.CreatePool(dbconfig.DB, request.AssetID, request.TargetAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pool)
}

// Contribute stakes into the pool; the filling contribution also executes
// the asset purchase.
func Contribute(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var request ContributeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pool, err := business.Contribute(dbconfig.DB, id, request.Address, request.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

// ClaimYield pays out accrued daily yield.
func ClaimYield(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var request AddressRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	paid, err := business.ClaimYield(dbconfig.DB, id, request.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paid": paid})
}

// Withdraw exits an unfunded pool, minus any penalty.
func Withdraw(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var request AddressRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	refund, err := business.Withdraw(dbconfig.DB, id, request.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund})
}

// ClaimFinalBonus is the pull-based completion payout.
func ClaimFinalBonus(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var request AddressRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	paid, err := business.ClaimFinalBonus(dbconfig.DB, id, request.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paid": paid})
}

// DistributeFinalBonus runs the push-based payout over all contributors.
func DistributeFinalBonus(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	total, err := business.DistributeFinalBonus(dbconfig.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_paid": total})
}

// UpdatePenalty sets the withdrawal penalty rate and/or toggle.
func UpdatePenalty(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var request PenaltyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Rate != nil {
		if err := business.SetPenaltyRate(dbconfig.DB, request.Caller, id, *request.Rate); err != nil {
			respondError(c, err)
			return
		}
	}
	if request.Enabled != nil {
		if err := business.SetPenaltyEnabled(dbconfig.DB, request.Caller, id, *request.Enabled); err != nil {
			respondError(c, err)
			return
		}
	}
	var pool models.Pool
	if err := dbconfig.DB.First(&pool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, pool)
}

// TransferCustody moves the pool's asset to another owner (operator role).
func TransferCustody(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var request CustodyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var pool models.Pool
	if err := dbconfig.DB.First(&pool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	if err := business.TransferAssetCustody(dbconfig.DB, request.Caller, pool.AssetID, request.To); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset_id": pool.AssetID, "owner": request.To})
}

// GetContributor returns one contributor record.
func GetContributor(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var record models.ContributorRecord
	if err := dbconfig.DB.Where("pool_id = ? AND address = ?", id, c.Param("address")).
		First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListContributors returns every contributor record for a pool.
func ListContributors(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}
	var records []models.ContributorRecord
	if err := dbconfig.DB.Where("pool_id = ?", id).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
