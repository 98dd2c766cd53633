package models

import (
	"time"
)

// Asset is one entry in the non-fungible ownership registry.
type Asset struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Owner     string    `gorm:"size:100;not null" json:"owner"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Asset) TableName() string {
	return "asset"
}

// Listing is the venue entry offering an asset for sale to one authorized
// buyer (a pool's escrow address).
type Listing struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	AssetID         uint      `gorm:"uniqueIndex;not null" json:"asset_id"`
	Seller          string    `gorm:"size:100;not null" json:"seller"`
	Price           int64     `gorm:"not null" json:"price"`
	AuthorizedBuyer string    `gorm:"size:100;not null" json:"authorized_buyer"`
	Sold            bool      `gorm:"default:false" json:"sold"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Listing) TableName() string {
	return "listing"
}

// AcquisitionRecord is written exactly once per asset, by the venue when the
// purchase executes. Its price anchors the governance quorum and its time
// opens the proposal submission window.
type AcquisitionRecord struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	AssetID    uint      `gorm:"uniqueIndex;not null" json:"asset_id"`
	Price      int64     `gorm:"not null" json:"price"`
	AcquiredAt time.Time `gorm:"not null" json:"acquired_at"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (AcquisitionRecord) TableName() string {
	return "acquisition_record"
}
