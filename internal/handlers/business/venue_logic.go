package business

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"assetpool/internal/models"
)

// Listing/purchase venue and acquisition registry. The purchase path is only
// ever invoked from inside the contribution that fills a pool, so it shares
// that operation's transaction and its all-or-nothing semantics.

// ListAsset puts an asset up for sale to one authorized buyer. Only the
// current owner may list, and an asset carries at most one listing.
func ListAsset(db *gorm.DB, assetID uint, seller string, price int64, authorizedBuyer string) (*models.Listing, error) {
	if price <= 0 {
		return nil, ErrZeroAmount
	}
	var listing *models.Listing
	err := db.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := forUpdate(tx).First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}
		if asset.Owner != seller {
			return ErrPermissionDenied
		}
		var existing models.Listing
		if err := tx.Where("asset_id = ?", assetID).First(&existing).Error; err == nil {
			return ErrAlreadyRecorded
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		listing = &models.Listing{
			AssetID:         assetID,
			Seller:          seller,
			Price:           price,
			AuthorizedBuyer: authorizedBuyer,
		}
		return tx.Create(listing).Error
	})
	return listing, err
}

// buyListing executes the purchase inside the caller's transaction: pays the
// seller from the buyer's balance, moves asset ownership to the buyer, and
// writes the one-shot acquisition record.
func buyListing(tx *gorm.DB, assetID uint, buyer string) (*models.Listing, error) {
	var listing models.Listing
	if err := forUpdate(tx).Where("asset_id = ?", assetID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.Sold {
		return nil, ErrListingSold
	}
	if listing.AuthorizedBuyer != buyer {
		return nil, ErrUnauthorizedBuyer
	}
	if err := Transfer(tx, buyer, listing.Seller, listing.Price); err != nil {
		return nil, err
	}
	var asset models.Asset
	if err := forUpdate(tx).First(&asset, assetID).Error; err != nil {
		return nil, err
	}
	asset.Owner = buyer
	if err := tx.Save(&asset).Error; err != nil {
		return nil, err
	}
	listing.Sold = true
	if err := tx.Save(&listing).Error; err != nil {
		return nil, err
	}
	if err := recordAcquisition(tx, assetID, listing.Price, nowFunc()); err != nil {
		return nil, err
	}
	return &listing, nil
}

// recordAcquisition writes the acquisition record, failing on a duplicate.
func recordAcquisition(tx *gorm.DB, assetID uint, price int64, at time.Time) error {
	var existing models.AcquisitionRecord
	err := tx.Where("asset_id = ?", assetID).First(&existing).Error
	if err == nil {
		return ErrAlreadyRecorded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&models.AcquisitionRecord{AssetID: assetID, Price: price, AcquiredAt: at}).Error
}

// RecordAcquisition is the registrar's boundary for acquisitions settled off
// the built-in venue. Write-once per asset.
func RecordAcquisition(db *gorm.DB, caller string, assetID uint, price int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := RequireRole(tx, models.RoleRegistrar, caller); err != nil {
			return err
		}
		var asset models.Asset
		if err := tx.First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}
		return recordAcquisition(tx, assetID, price, nowFunc())
	})
}

// Acquisition returns the write-once acquisition record for an asset.
func Acquisition(tx *gorm.DB, assetID uint) (*models.AcquisitionRecord, error) {
	var rec models.AcquisitionRecord
	if err := tx.Where("asset_id = ?", assetID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAcquired
		}
		return nil, err
	}
	return &rec, nil
}

// DevelopmentRecordFor returns the asset's development record if one exists.
func DevelopmentRecordFor(tx *gorm.DB, assetID uint) (*models.DevelopmentRecord, error) {
	var rec models.DevelopmentRecord
	if err := tx.Where("asset_id = ?", assetID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// TransferAssetCustody moves asset ownership on behalf of the operator role.
// Deliberately a different tier than the owner role.
func TransferAssetCustody(db *gorm.DB, caller string, assetID uint, to string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := RequireRole(tx, models.RoleOperator, caller); err != nil {
			return err
		}
		var asset models.Asset
		if err := forUpdate(tx).First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}
		asset.Owner = to
		return tx.Save(&asset).Error
	})
}
