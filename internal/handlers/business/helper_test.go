package business

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"assetpool/internal/models"
	"assetpool/pkg/config"
)

const (
	ownerAddr     = "addr-owner"
	operatorAddr  = "addr-operator"
	registrarAddr = "addr-venue"
	sellerAddr    = "addr-seller"
	contributorA  = "addr-alice"
	contributorB  = "addr-bob"
)

// newTestDB opens a private in-memory database with the full schema and the
// system allowlist plus test role assignments.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateModels(db))
	require.NoError(t, config.SeedSystemRecords(db))

	for role, addr := range map[string]string{
		models.RoleOwner:     ownerAddr,
		models.RoleOperator:  operatorAddr,
		models.RoleRegistrar: registrarAddr,
	} {
		require.NoError(t, db.Create(&models.RoleConfig{Role: role, Address: addr}).Error)
	}

	return db
}

// setNow pins the engine clock for the test and restores it afterwards.
func setNow(t *testing.T, at time.Time) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = old })
}

// advanceNow moves the pinned clock forward.
func advanceNow(d time.Duration) {
	current := nowFunc()
	nowFunc = func() time.Time { return current.Add(d) }
}

// fundAddress mints funding units and approves the engine to pull them.
func fundAddress(t *testing.T, db *gorm.DB, address string, amount int64) {
	t.Helper()
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := Mint(tx, SystemAccount, address, amount); err != nil {
			return err
		}
		return Approve(tx, address, SystemAccount, amount)
	}))
}

func fundBalance(t *testing.T, db *gorm.DB, address string) int64 {
	t.Helper()
	var acct models.LedgerAccount
	err := db.Where("address = ?", address).First(&acct).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return acct.Balance
}

func claimBalance(t *testing.T, db *gorm.DB, address string) int64 {
	t.Helper()
	var bal models.ClaimBalance
	err := db.Where("address = ?", address).First(&bal).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return bal.Balance
}

// newListedPool creates an asset, lists it at price == target authorized for
// the pool escrow, and returns the pool.
func newListedPool(t *testing.T, db *gorm.DB, target int64) *models.Pool {
	t.Helper()

	asset := models.Asset{Name: "test asset", Owner: sellerAddr}
	require.NoError(t, db.Create(&asset).Error)

	pool, err := CreatePool(db, asset.ID, target)
	require.NoError(t, err)

	_, err = ListAsset(db, asset.ID, sellerAddr, target, pool.EscrowAddress)
	require.NoError(t, err)

	return pool
}

// newFundedPool fills the pool 600/400 from the two standard contributors.
func newFundedPool(t *testing.T, db *gorm.DB) *models.Pool {
	t.Helper()

	pool := newListedPool(t, db, 1000)
	fundAddress(t, db, contributorA, 600)
	fundAddress(t, db, contributorB, 400)

	_, err := Contribute(db, pool.ID, contributorA, 600)
	require.NoError(t, err)
	pool, err = Contribute(db, pool.ID, contributorB, 400)
	require.NoError(t, err)
	require.True(t, pool.Funded)

	return pool
}

// newDevelopedPool walks the whole flow up to an executed proposal and
// returns the pool and the development record.
func newDevelopedPool(t *testing.T, db *gorm.DB, projectDuration int64) (*models.Pool, *models.DevelopmentRecord) {
	t.Helper()

	pool := newFundedPool(t, db)

	fundAddress(t, db, contributorA, ProposerRegistrationFee)
	require.NoError(t, RegisterProposer(db, contributorA))

	proposal, err := SubmitProposal(db, pool.AssetID, contributorA, 40, projectDuration)
	require.NoError(t, err)

	// 600 claim tokens clears the 30% quorum of the 1000-unit price.
	require.NoError(t, Vote(db, proposal.ID, contributorA, 600))

	advanceNow(VotingWindow + time.Hour)
	record, err := ExecuteWinningProposal(db, pool.AssetID)
	require.NoError(t, err)

	return pool, record
}
