package models

import (
	"time"
)

// Role names used in RoleConfig.
const (
	RoleOwner     = "owner"     // administrative settings (penalty rate, roles)
	RoleOperator  = "operator"  // asset custody transfers
	RoleRegistrar = "registrar" // acquisition recording (the venue)
)

// RoleConfig assigns an address to a role. Each operation checks the role it
// needs explicitly; owner and operator are deliberately distinct tiers.
type RoleConfig struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Role      string    `gorm:"size:20;not null;uniqueIndex:idx_role_address" json:"role"`
	Address   string    `gorm:"size:100;not null;uniqueIndex:idx_role_address" json:"address"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (RoleConfig) TableName() string {
	return "role_config"
}
