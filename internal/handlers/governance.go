package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers/business"
	"assetpool/internal/models"
	dbconfig "assetpool/pkg/config"
)

// RegisterProposerRequest pays the one-time registration fee.
type RegisterProposerRequest struct {
	Address string `json:"address" binding:"required"`
}

// RecordAcquisitionRequest is the registrar's write-once acquisition entry.
type RecordAcquisitionRequest struct {
	Caller  string `json:"caller" binding:"required"`
	AssetID uint   `json:"asset_id" binding:"required"`
	Price   int64  `json:"price" binding:"required"`
}

// SubmitProposalRequest opens a development proposal for a funded asset.
type SubmitProposalRequest struct {
	AssetID      uint   `json:"asset_id" binding:"required"`
	Proposer     string `json:"proposer" binding:"required"`
	SharePercent int64  `json:"share_percent"`
	Duration     int64  `json:"duration" binding:"required"`
}

// VoteRequest locks claim tokens behind a proposal.
type VoteRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
}

// RegisterProposer handles proposer registration.
func RegisterProposer(c *gin.Context) {
	var request RegisterProposerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := business.RegisterProposer(dbconfig.DB, request.Address); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": request.Address, "fee_paid": business.ProposerRegistrationFee})
}

// RecordAcquisition handles the registrar's acquisition entry.
func RecordAcquisition(c *gin.Context) {
	var request RecordAcquisitionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := business.RecordAcquisition(dbconfig.DB, request.Caller, request.AssetID, request.Price); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset_id": request.AssetID})
}

// SubmitProposal handles proposal submission.
func SubmitProposal(c *gin.Context) {
	var request SubmitProposalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	proposal, err := business.SubmitProposal(dbconfig.DB, request.AssetID, request.Proposer,
		request.SharePercent, request.Duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

// ListProposals returns proposals, optionally filtered by asset.
func ListProposals(c *gin.Context) {
	query := dbconfig.DB.Order("id ASC")
	if assetID := c.Query("asset_id"); assetID != "" {
		query = query.Where("asset_id = ?", assetID)
	}
	var proposals []models.Proposal
	if err := query.Find(&proposals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, proposals)
}

// GetProposal returns one proposal with its votes.
func GetProposal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var proposal models.Proposal
	if err := dbconfig.DB.First(&proposal, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	var votes []models.Vote
	if err := dbconfig.DB.Where("proposal_id = ?", id).Find(&votes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposal": proposal, "votes": votes})
}

// CastVote handles voting on a proposal.
func CastVote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var request VoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := business.Vote(dbconfig.DB, uint(id), request.Address, request.Amount); err != nil {
		respondError(c, err)
		return
	}
	var proposal models.Proposal
	if err := dbconfig.DB.First(&proposal, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, proposal)
}

// ExecuteProposal settles governance for an asset, minting the development
// record for the winning proposal.
func ExecuteProposal(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	record, err := business.ExecuteWinningProposal(dbconfig.DB, uint(assetID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
