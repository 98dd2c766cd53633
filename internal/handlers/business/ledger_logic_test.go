package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assetpool/internal/models"
)

func inTx(t *testing.T, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	t.Helper()
	return db.Transaction(fn)
}

func TestMintRequiresAllowlist(t *testing.T) {
	db := newTestDB(t)

	err := inTx(t, db, func(tx *gorm.DB) error {
		return Mint(tx, contributorA, contributorA, 100)
	})
	assert.ErrorIs(t, err, ErrNotAllowlisted)

	err = inTx(t, db, func(tx *gorm.DB) error {
		return Mint(tx, SystemAccount, contributorA, 100)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), fundBalance(t, db, contributorA))

	err = inTx(t, db, func(tx *gorm.DB) error {
		return Burn(tx, contributorA, contributorA, 50)
	})
	assert.ErrorIs(t, err, ErrNotAllowlisted)

	err = inTx(t, db, func(tx *gorm.DB) error {
		return Burn(tx, SystemAccount, contributorA, 50)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), fundBalance(t, db, contributorA))
}

func TestTransferInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	fundAddress(t, db, contributorA, 100)

	err := inTx(t, db, func(tx *gorm.DB) error {
		return Transfer(tx, contributorA, contributorB, 101)
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	err = inTx(t, db, func(tx *gorm.DB) error {
		return Transfer(tx, contributorA, contributorB, 60)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), fundBalance(t, db, contributorA))
	assert.Equal(t, int64(60), fundBalance(t, db, contributorB))
}

func TestTransferFromConsumesAllowance(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error {
		return Mint(tx, SystemAccount, contributorA, 500)
	}))

	// No grant at all.
	err := inTx(t, db, func(tx *gorm.DB) error {
		return TransferFrom(tx, operatorAddr, contributorA, contributorB, 100)
	})
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error {
		return Approve(tx, contributorA, operatorAddr, 300)
	}))

	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error {
		return TransferFrom(tx, operatorAddr, contributorA, contributorB, 200)
	}))
	assert.Equal(t, int64(300), fundBalance(t, db, contributorA))
	assert.Equal(t, int64(200), fundBalance(t, db, contributorB))

	// 100 left on the grant.
	err = inTx(t, db, func(tx *gorm.DB) error {
		return TransferFrom(tx, operatorAddr, contributorA, contributorB, 101)
	})
	assert.ErrorIs(t, err, ErrInsufficientAllowance)
}

func TestClaimSupplyTracksMintAndBurn(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error {
		if err := ClaimMint(tx, SystemAccount, contributorA, 600); err != nil {
			return err
		}
		return ClaimMint(tx, SystemAccount, contributorB, 400)
	}))

	var supply int64
	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error {
		var err error
		supply, err = ClaimTotalSupply(tx)
		return err
	}))
	assert.Equal(t, int64(1000), supply)

	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error {
		return ClaimBurn(tx, SystemAccount, contributorB, 400)
	}))
	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error {
		var err error
		supply, err = ClaimTotalSupply(tx)
		return err
	}))
	assert.Equal(t, int64(600), supply)

	err := inTx(t, db, func(tx *gorm.DB) error {
		return ClaimBurn(tx, SystemAccount, contributorB, 1)
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestRoleChecks(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, inTx(t, db, func(tx *gorm.DB) error {
		return RequireRole(tx, models.RoleOwner, ownerAddr)
	}))

	err := inTx(t, db, func(tx *gorm.DB) error {
		return RequireRole(tx, models.RoleOwner, contributorA)
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
