package models

import (
	"time"
)

// Proposal is a development plan submitted for a funded asset. Ids are
// sequential and never reused. A proposal past VoteEndAt with Executed still
// false is simply inert; there is no explicit rejected state.
type Proposal struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	AssetID        uint      `gorm:"not null;index" json:"asset_id"`
	Proposer       string    `gorm:"size:100;not null" json:"proposer"`
	SharePercent   int64     `gorm:"not null" json:"share_percent"`
	Duration       int64     `gorm:"not null" json:"duration"` // seconds
	VoteEndAt      time.Time `gorm:"not null" json:"vote_end_at"`
	YesWeight      int64     `gorm:"not null;default:0" json:"yes_weight"`
	SupplySnapshot int64     `gorm:"not null;default:0" json:"supply_snapshot"`
	Executed       bool      `gorm:"default:false" json:"executed"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Proposal) TableName() string {
	return "proposal"
}

// Vote is the write-once weight an address committed to a proposal. The
// weight is transferred into governance custody when cast and burned when the
// asset's winning proposal executes; it is never returned.
type Vote struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ProposalID uint      `gorm:"not null;uniqueIndex:idx_proposal_voter" json:"proposal_id"`
	Address    string    `gorm:"size:100;not null;uniqueIndex:idx_proposal_voter" json:"address"`
	Weight     int64     `gorm:"not null" json:"weight"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Vote) TableName() string {
	return "vote"
}

// ProposerRegistration records the one-time registration fee payment that
// entitles an address to submit proposals.
type ProposerRegistration struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	FeePaid   int64     `gorm:"not null" json:"fee_paid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ProposerRegistration) TableName() string {
	return "proposer_registration"
}
