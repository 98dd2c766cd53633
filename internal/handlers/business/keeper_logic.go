package business

import (
	"fmt"

	"gorm.io/gorm"

	"assetpool/internal/models"
)

// Keeper components.
const (
	ComponentPool       = "pool"
	ComponentGovernance = "governance"
)

// DueAction is the opaque payload handed to a keeper: which component is due
// and the id to service (pool id, or asset id for governance).
type DueAction struct {
	Component string `json:"component"`
	ID        uint   `json:"id"`
}

// ScanDueAction polls both engines and reports the first due action, or nil.
// Keepers call this repeatedly; the answer may go stale between poll and
// perform, which PerformDueAction tolerates.
func ScanDueAction(db *gorm.DB) (*DueAction, error) {
	var pools []models.Pool
	if err := db.Where("funded = ? AND final_bonus_paid = ?", true, false).
		Order("id ASC").Find(&pools).Error; err != nil {
		return nil, err
	}
	for _, pool := range pools {
		due, err := PoolActionDue(db, pool.ID)
		if err != nil {
			return nil, err
		}
		if due {
			return &DueAction{Component: ComponentPool, ID: pool.ID}, nil
		}
	}

	due, assetID, err := GovernanceActionDue(db)
	if err != nil {
		return nil, err
	}
	if due {
		return &DueAction{Component: ComponentGovernance, ID: assetID}, nil
	}
	return nil, nil
}

// PerformDueAction re-validates and services the action. A stale payload is
// a harmless no-op; keepers may race and retry freely.
func PerformDueAction(db *gorm.DB, action DueAction) error {
	switch action.Component {
	case ComponentPool:
		return PerformPoolDueAction(db, action.ID)
	case ComponentGovernance:
		return PerformGovernanceDueAction(db, action.ID)
	default:
		return fmt.Errorf("unknown keeper component %q", action.Component)
	}
}
