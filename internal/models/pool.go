package models

import (
	"time"
)

// Pool accumulates contributions toward the funding target of one asset.
// Once TotalContributed reaches TargetAmount the pool is funded for good and
// the asset purchase has already been executed in the same transaction.
type Pool struct {
	ID                    uint       `gorm:"primarykey" json:"id"`
	AssetID               uint       `gorm:"uniqueIndex;not null" json:"asset_id"`
	EscrowAddress         string     `gorm:"size:100;uniqueIndex;not null" json:"escrow_address"`
	TargetAmount          int64      `gorm:"not null" json:"target_amount"`
	TotalContributed      int64      `gorm:"not null;default:0" json:"total_contributed"`
	Funded                bool       `gorm:"default:false" json:"funded"`
	FundedAt              *time.Time `json:"funded_at,omitempty"`
	WithdrawalPenaltyRate int64      `gorm:"not null;default:10" json:"withdrawal_penalty_rate"`
	PenaltyEnabled        bool       `gorm:"default:true" json:"penalty_enabled"`
	FinalBonusActive      bool       `gorm:"default:false" json:"final_bonus_active"`
	FinalBonusPaid        bool       `gorm:"default:false" json:"final_bonus_paid"`
	CreatedAt             time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Pool) TableName() string {
	return "pool"
}

// ContributorRecord tracks one address's stake in one pool. BonusEligibleAmount
// is a frozen snapshot of the stake used for the one-time completion bonus; it
// is zeroed only by withdrawal, never by yield claims.
type ContributorRecord struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	PoolID              uint      `gorm:"not null;uniqueIndex:idx_pool_contributor" json:"pool_id"`
	Address             string    `gorm:"size:100;not null;uniqueIndex:idx_pool_contributor" json:"address"`
	Amount              int64     `gorm:"not null;default:0" json:"amount"`
	LastAccrualDay      int64     `gorm:"not null;default:0" json:"last_accrual_day"`
	AccumulatedYield    int64     `gorm:"not null;default:0" json:"accumulated_yield"`
	BonusEligibleAmount int64     `gorm:"not null;default:0" json:"bonus_eligible_amount"`
	BonusPaid           bool      `gorm:"default:false" json:"bonus_paid"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ContributorRecord) TableName() string {
	return "contributor_record"
}
