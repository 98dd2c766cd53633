package models

import (
	"time"
)

// DevelopmentRecord is minted when a winning proposal executes. At most one
// exists per asset; its deadline unlocks the pool's completion bonus.
type DevelopmentRecord struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	AssetID      uint      `gorm:"uniqueIndex;not null" json:"asset_id"`
	Developer    string    `gorm:"size:100;not null" json:"developer"`
	SharePercent int64     `gorm:"not null" json:"share_percent"`
	StartAt      time.Time `gorm:"not null" json:"start_at"`
	Duration     int64     `gorm:"not null" json:"duration"` // seconds
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (DevelopmentRecord) TableName() string {
	return "development_record"
}

// Deadline is StartAt plus Duration. Computed, never stored.
func (d *DevelopmentRecord) Deadline() time.Time {
	return d.StartAt.Add(time.Duration(d.Duration) * time.Second)
}
