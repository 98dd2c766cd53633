package models

import (
	"time"
)

// LedgerAccount holds a fungible funding-currency balance.
type LedgerAccount struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (LedgerAccount) TableName() string {
	return "ledger_account"
}

// ClaimBalance holds claim tokens, minted 1:1 per contributed unit and used
// as voting weight.
type ClaimBalance struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ClaimBalance) TableName() string {
	return "claim_balance"
}

// LedgerAllowlist names the callers permitted to mint or burn on the ledgers.
type LedgerAllowlist struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	CanMint   bool      `gorm:"default:false" json:"can_mint"`
	CanBurn   bool      `gorm:"default:false" json:"can_burn"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (LedgerAllowlist) TableName() string {
	return "ledger_allowlist"
}

// LedgerAllowance is the amount a spender may move out of an owner's funding
// balance via transfer-from.
type LedgerAllowance struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Owner     string    `gorm:"size:100;not null;uniqueIndex:idx_owner_spender" json:"owner"`
	Spender   string    `gorm:"size:100;not null;uniqueIndex:idx_owner_spender" json:"spender"`
	Amount    int64     `gorm:"not null;default:0" json:"amount"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (LedgerAllowance) TableName() string {
	return "ledger_allowance"
}
