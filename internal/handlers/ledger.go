package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"assetpool/internal/handlers/business"
	"assetpool/internal/models"
	dbconfig "assetpool/pkg/config"
)

// TransferRequest moves funding units between accounts.
type TransferRequest struct {
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

// MintRequest creates funding units (allowlisted callers only).
type MintRequest struct {
	Caller string `json:"caller" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

// ApproveRequest grants a spender an allowance over the owner's balance.
type ApproveRequest struct {
	Owner   string `json:"owner" binding:"required"`
	Spender string `json:"spender" binding:"required"`
	Amount  int64  `json:"amount"`
}

// GetBalance returns a funding-ledger balance. Unknown addresses read as
// zero without creating a row.
func GetBalance(c *gin.Context) {
	var acct models.LedgerAccount
	err := dbconfig.DB.Where("address = ?", c.Param("address")).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"address": c.Param("address"), "balance": 0})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, acct)
}

// GetClaimBalance returns a claim-token balance.
func GetClaimBalance(c *gin.Context) {
	var bal models.ClaimBalance
	err := dbconfig.DB.Where("address = ?", c.Param("address")).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"address": c.Param("address"), "balance": 0})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bal)
}

// TransferFunds moves funding units.
func TransferFunds(c *gin.Context) {
	var request TransferRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		return business.Transfer(tx, request.From, request.To, request.Amount)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": request.From, "to": request.To, "amount": request.Amount})
}

// MintFunds creates funding units for allowlisted callers.
func MintFunds(c *gin.Context) {
	var request MintRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		return business.Mint(tx, request.Caller, request.To, request.Amount)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"to": request.To, "amount": request.Amount})
}

// ApproveSpender sets an allowance.
func ApproveSpender(c *gin.Context) {
	var request ApproveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		return business.Approve(tx, request.Owner, request.Spender, request.Amount)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": request.Owner, "spender": request.Spender, "amount": request.Amount})
}
