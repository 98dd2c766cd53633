package business

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known ledger accounts. The system account is the engine's own identity
// on the mint/burn allowlist; seeded at startup.
const (
	SystemAccount     = "system"
	TreasuryAccount   = "treasury"
	GovernanceCustody = "governance"
)

// Economic parameters. All money math is integer fixed point over these
// denominators; no floats touch a balance.
const (
	DailyYieldNumerator   = 5 // 5 basis points per day
	DailyYieldDenominator = 10000

	FinalBonusNumerator   = 110 // 110% of the frozen bonus-eligible amount
	FinalBonusDenominator = 100

	QuorumPercent = 30 // of the asset's acquisition price

	ProposerRegistrationFee = 100

	// Proposals may be submitted for one voting window after acquisition.
	ProposalSubmissionWindow = 7 * 24 * time.Hour
	VotingWindow             = 7 * 24 * time.Hour
)

const secondsPerDay = 86400

// nowFunc is swapped out by tests to steer day boundaries and vote windows.
var nowFunc = time.Now

// CurrentDay returns the integer day index used for yield accrual.
func CurrentDay() int64 {
	return nowFunc().Unix() / secondsPerDay
}

// EscrowAddress derives the deterministic ledger address holding a pool's
// contributions and, after purchase, owning the asset.
func EscrowAddress(assetID uint) string {
	return fmt.Sprintf("pool-escrow-%d", assetID)
}

// forUpdate adds a row lock under postgres. The sqlite driver used in tests
// has no FOR UPDATE; its single-writer file lock gives the same isolation.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
