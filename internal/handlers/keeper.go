package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers/business"
	dbconfig "assetpool/pkg/config"
)

// KeeperDue is the external scheduler's poll: reports whether any time-gated
// action is due and the payload to service it with.
func KeeperDue(c *gin.Context) {
	action, err := business.ScanDueAction(dbconfig.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if action == nil {
		c.JSON(http.StatusOK, gin.H{"due": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"due": true, "action": action})
}

// KeeperRun services a due action. Stale or duplicate payloads are harmless;
// the response says whether anything was still due.
func KeeperRun(c *gin.Context) {
	var action business.DueAction
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := business.PerformDueAction(dbconfig.DB, action); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"performed": true})
}
