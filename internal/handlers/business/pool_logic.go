package business

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"assetpool/internal/models"
)

// Pool engine. Every operation is one DB transaction that locks the pool row
// first, so operations are serialized per pool and either apply fully or not
// at all. Precondition failures roll the transaction back untouched.

func lockPool(tx *gorm.DB, poolID uint) (*models.Pool, error) {
	var pool models.Pool
	if err := forUpdate(tx).First(&pool, poolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}
	return &pool, nil
}

func lockPoolByAsset(tx *gorm.DB, assetID uint) (*models.Pool, error) {
	var pool models.Pool
	if err := forUpdate(tx).Where("asset_id = ?", assetID).First(&pool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}
	return &pool, nil
}

// CreatePool registers a new funding pool for a listed-to-be asset. The
// escrow address is derived from the asset id and doubles as the venue's
// authorized buyer.
func CreatePool(db *gorm.DB, assetID uint, targetAmount int64) (*models.Pool, error) {
	if targetAmount <= 0 {
		return nil, ErrZeroAmount
	}
	pool := &models.Pool{
		AssetID:       assetID,
		EscrowAddress: EscrowAddress(assetID),
		TargetAmount:  targetAmount,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}
		return tx.Create(pool).Error
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// settlePendingYield pays out any yield accrued since the record's last
// accrual day and advances the day marker. Zero elapsed days pays nothing.
func settlePendingYield(tx *gorm.DB, record *models.ContributorRecord) (int64, error) {
	today := CurrentDay()
	days := today - record.LastAccrualDay
	if days <= 0 || record.Amount == 0 {
		record.LastAccrualDay = today
		return 0, nil
	}
	yield := record.Amount * DailyYieldNumerator * days / DailyYieldDenominator
	if yield > 0 {
		if err := Mint(tx, SystemAccount, record.Address, yield); err != nil {
			return 0, err
		}
		record.AccumulatedYield += yield
	}
	record.LastAccrualDay = today
	return yield, nil
}

// Contribute stakes amount into the pool, minting claim tokens 1:1. The
// contribution that reaches the target triggers the venue purchase in the
// same transaction; if the purchase fails the contribution fails with it.
func Contribute(db *gorm.DB, poolID uint, address string, amount int64) (*models.Pool, error) {
	if amount <= 0 {
		return nil, ErrZeroAmount
	}
	var pool *models.Pool
	filled := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		pool, err = lockPool(tx, poolID)
		if err != nil {
			return err
		}
		if pool.Funded {
			return ErrPoolFunded
		}
		if pool.TotalContributed+amount > pool.TargetAmount {
			return ErrTargetExceeded
		}

		if err := TransferFrom(tx, SystemAccount, address, pool.EscrowAddress, amount); err != nil {
			return err
		}
		if err := ClaimMint(tx, SystemAccount, address, amount); err != nil {
			return err
		}

		var record models.ContributorRecord
		err = forUpdate(tx).Where("pool_id = ? AND address = ?", poolID, address).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = models.ContributorRecord{
				PoolID:         poolID,
				Address:        address,
				LastAccrualDay: CurrentDay(),
			}
		case err != nil:
			return err
		default:
			// Top-up: settle yield on the old stake before the balance
			// changes, otherwise the next claim would accrue the new amount
			// over the elapsed period.
			if _, err := settlePendingYield(tx, &record); err != nil {
				return err
			}
		}
		record.Amount += amount
		record.BonusEligibleAmount += amount
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		pool.TotalContributed += amount
		if pool.TotalContributed == pool.TargetAmount {
			now := nowFunc()
			pool.Funded = true
			pool.FundedAt = &now
			if _, err := buyListing(tx, pool.AssetID, pool.EscrowAddress); err != nil {
				return err
			}
			filled = true
		}
		return tx.Save(pool).Error
	})
	if err != nil {
		return nil, err
	}
	if filled {
		logrus.WithFields(logrus.Fields{"pool_id": pool.ID, "asset_id": pool.AssetID}).
			Info("pool funded, asset acquired")
		publishEvent(EventPoolAcquired, map[string]interface{}{
			"pool_id":  pool.ID,
			"asset_id": pool.AssetID,
			"target":   pool.TargetAmount,
		})
	}
	return pool, nil
}

// ClaimYield pays the daily yield accrued since the last claim. A second
// call on the same day pays zero and is not an error; calling with no stake
// at all is.
func ClaimYield(db *gorm.DB, poolID uint, address string) (int64, error) {
	var paid int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockPool(tx, poolID); err != nil {
			return err
		}
		var record models.ContributorRecord
		err := forUpdate(tx).Where("pool_id = ? AND address = ?", poolID, address).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveStake
		}
		if err != nil {
			return err
		}
		if record.Amount == 0 {
			return ErrNoActiveStake
		}
		paid, err = settlePendingYield(tx, &record)
		if err != nil {
			return err
		}
		return tx.Save(&record).Error
	})
	return paid, err
}

// ensureBonusActive flips the one-shot bonus flag once the development
// record's deadline has passed. Callers hold the pool row lock.
func ensureBonusActive(tx *gorm.DB, pool *models.Pool) error {
	if pool.FinalBonusActive {
		return nil
	}
	if !pool.Funded {
		return ErrPoolNotFunded
	}
	dev, err := DevelopmentRecordFor(tx, pool.AssetID)
	if err != nil {
		return err
	}
	if dev == nil || nowFunc().Before(dev.Deadline()) {
		return ErrBonusNotDue
	}
	pool.FinalBonusActive = true
	return tx.Save(pool).Error
}

// ClaimFinalBonus is the pull-based completion payout: 110% of the frozen
// bonus-eligible snapshot, once per contributor, available any time after
// the development deadline passes.
func ClaimFinalBonus(db *gorm.DB, poolID uint, address string) (int64, error) {
	var paid int64
	err := db.Transaction(func(tx *gorm.DB) error {
		pool, err := lockPool(tx, poolID)
		if err != nil {
			return err
		}
		if err := ensureBonusActive(tx, pool); err != nil {
			return err
		}
		var record models.ContributorRecord
		err = forUpdate(tx).Where("pool_id = ? AND address = ?", poolID, address).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveStake
		}
		if err != nil {
			return err
		}
		if record.BonusEligibleAmount == 0 || record.BonusPaid {
			return ErrBonusAlreadyPaid
		}
		paid = record.BonusEligibleAmount * FinalBonusNumerator / FinalBonusDenominator
		if err := Mint(tx, SystemAccount, address, paid); err != nil {
			return err
		}
		record.BonusPaid = true
		record.AccumulatedYield += paid
		return tx.Save(&record).Error
	})
	if err != nil {
		return 0, err
	}
	publishEvent(EventBonusPaid, map[string]interface{}{
		"pool_id": poolID,
		"address": address,
		"amount":  paid,
	})
	return paid, nil
}

// DistributeFinalBonus pays every still-unpaid eligible contributor in one
// pass and then latches the pool-level paid flag. Re-invocation pays nothing
// and does not error. Cost grows with contributor count; the pull path above
// is the preferred way to drain the same entitlements.
func DistributeFinalBonus(db *gorm.DB, poolID uint) (int64, error) {
	var totalPaid int64
	var payouts int
	err := db.Transaction(func(tx *gorm.DB) error {
		pool, err := lockPool(tx, poolID)
		if err != nil {
			return err
		}
		if pool.FinalBonusPaid {
			return nil
		}
		if err := ensureBonusActive(tx, pool); err != nil {
			return err
		}
		var records []models.ContributorRecord
		if err := forUpdate(tx).
			Where("pool_id = ? AND bonus_eligible_amount > 0 AND bonus_paid = ?", poolID, false).
			Find(&records).Error; err != nil {
			return err
		}
		for i := range records {
			record := &records[i]
			bonus := record.BonusEligibleAmount * FinalBonusNumerator / FinalBonusDenominator
			if err := Mint(tx, SystemAccount, record.Address, bonus); err != nil {
				return err
			}
			record.BonusPaid = true
			record.AccumulatedYield += bonus
			if err := tx.Save(record).Error; err != nil {
				return err
			}
			totalPaid += bonus
			payouts++
		}
		pool.FinalBonusPaid = true
		return tx.Save(pool).Error
	})
	if err != nil {
		return 0, err
	}
	if payouts > 0 {
		logrus.WithFields(logrus.Fields{"pool_id": poolID, "payouts": payouts, "total": totalPaid}).
			Info("final bonus distributed")
		publishEvent(EventBonusPaid, map[string]interface{}{
			"pool_id": poolID,
			"payouts": payouts,
			"total":   totalPaid,
		})
	}
	return totalPaid, nil
}

// Withdraw exits the pool before funding, auto-claiming pending yield, then
// refunding the stake minus the configured penalty. A 100% penalty zeroes
// the refund; that is legitimate. After funding, withdrawal always fails.
func Withdraw(db *gorm.DB, poolID uint, address string) (int64, error) {
	var refund int64
	err := db.Transaction(func(tx *gorm.DB) error {
		pool, err := lockPool(tx, poolID)
		if err != nil {
			return err
		}
		if pool.Funded {
			return ErrPoolFunded
		}
		var record models.ContributorRecord
		err = forUpdate(tx).Where("pool_id = ? AND address = ?", poolID, address).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveStake
		}
		if err != nil {
			return err
		}
		if record.Amount == 0 {
			return ErrNoActiveStake
		}
		if _, err := settlePendingYield(tx, &record); err != nil {
			return err
		}

		amount := record.Amount
		var penalty int64
		if pool.PenaltyEnabled {
			penalty = amount * pool.WithdrawalPenaltyRate / 100
		}
		refund = amount - penalty
		if refund > 0 {
			if err := Transfer(tx, pool.EscrowAddress, address, refund); err != nil {
				return err
			}
		}
		if penalty > 0 {
			if err := Transfer(tx, pool.EscrowAddress, TreasuryAccount, penalty); err != nil {
				return err
			}
		}
		if err := ClaimBurn(tx, SystemAccount, address, amount); err != nil {
			return err
		}

		record.Amount = 0
		record.BonusEligibleAmount = 0
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		pool.TotalContributed -= amount
		return tx.Save(pool).Error
	})
	return refund, err
}

// SetPenaltyRate updates the withdrawal penalty (owner role, 0-100).
func SetPenaltyRate(db *gorm.DB, caller string, poolID uint, rate int64) error {
	if rate < 0 || rate > 100 {
		return ErrInvalidRate
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := RequireRole(tx, models.RoleOwner, caller); err != nil {
			return err
		}
		pool, err := lockPool(tx, poolID)
		if err != nil {
			return err
		}
		pool.WithdrawalPenaltyRate = rate
		return tx.Save(pool).Error
	})
}

// SetPenaltyEnabled toggles the withdrawal penalty (owner role).
func SetPenaltyEnabled(db *gorm.DB, caller string, poolID uint, enabled bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := RequireRole(tx, models.RoleOwner, caller); err != nil {
			return err
		}
		pool, err := lockPool(tx, poolID)
		if err != nil {
			return err
		}
		pool.PenaltyEnabled = enabled
		return tx.Save(pool).Error
	})
}

// PoolActionDue is the keeper predicate: funded, bonus not yet distributed,
// development deadline passed.
func PoolActionDue(db *gorm.DB, poolID uint) (bool, error) {
	var pool models.Pool
	if err := db.First(&pool, poolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPoolNotFound
		}
		return false, err
	}
	if !pool.Funded || pool.FinalBonusPaid {
		return false, nil
	}
	dev, err := DevelopmentRecordFor(db, pool.AssetID)
	if err != nil {
		return false, err
	}
	if dev == nil {
		return false, nil
	}
	return !nowFunc().Before(dev.Deadline()), nil
}

// PerformPoolDueAction distributes the final bonus when due and is a
// harmless no-op on a stale poll. Keepers may race; the pool row lock and
// the one-shot paid flag make redundant invocations pay nothing.
func PerformPoolDueAction(db *gorm.DB, poolID uint) error {
	due, err := PoolActionDue(db, poolID)
	if err != nil {
		return err
	}
	if !due {
		return nil
	}
	_, err = DistributeFinalBonus(db, poolID)
	if errors.Is(err, ErrBonusNotDue) || errors.Is(err, ErrBonusAlreadyPaid) {
		return nil
	}
	return err
}
