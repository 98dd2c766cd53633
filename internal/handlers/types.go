package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers/business"
)

var notFoundErrors = []error{
	business.ErrPoolNotFound,
	business.ErrAssetNotFound,
	business.ErrListingNotFound,
	business.ErrNoActiveStake,
	business.ErrNotAcquired,
	business.ErrNoEligibleProposal,
}

var forbiddenErrors = []error{
	business.ErrPermissionDenied,
	business.ErrNotAllowlisted,
	business.ErrUnauthorizedBuyer,
	business.ErrNotRegistered,
}

var conflictErrors = []error{
	business.ErrAlreadyRegistered,
	business.ErrAlreadyRecorded,
	business.ErrAlreadyDeveloped,
	business.ErrAlreadyVoted,
	business.ErrPoolFunded,
	business.ErrBonusAlreadyPaid,
	business.ErrListingSold,
}

var badRequestErrors = []error{
	business.ErrZeroAmount,
	business.ErrTargetExceeded,
	business.ErrPoolNotFunded,
	business.ErrBonusNotDue,
	business.ErrInsufficientBalance,
	business.ErrInsufficientAllowance,
	business.ErrInvalidRate,
	business.ErrInvalidShare,
	business.ErrInvalidDuration,
	business.ErrWindowExpired,
	business.ErrVotingClosed,
	business.ErrQuorumNotReached,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError maps the engine's sentinel errors onto HTTP statuses. Every
// precondition failure carries its own reason string, so clients can tell
// exactly which check rejected them. Anything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case matchesAny(err, notFoundErrors):
		status = http.StatusNotFound
	case matchesAny(err, forbiddenErrors):
		status = http.StatusForbidden
	case matchesAny(err, conflictErrors):
		status = http.StatusConflict
	case matchesAny(err, badRequestErrors):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
