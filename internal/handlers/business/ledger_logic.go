package business

import (
	"errors"

	"gorm.io/gorm"

	"assetpool/internal/models"
)

// Funding-ledger and claim-token primitives. Every function takes the
// transaction handle it must run inside; the pool and governance engines
// compose them so a failed transfer aborts the whole operation.

func fetchAccount(tx *gorm.DB, address string) (*models.LedgerAccount, error) {
	var acct models.LedgerAccount
	err := forUpdate(tx).Where("address = ?", address).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		acct = models.LedgerAccount{Address: address}
		if err := tx.Create(&acct).Error; err != nil {
			return nil, err
		}
		return &acct, nil
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func fetchClaimBalance(tx *gorm.DB, address string) (*models.ClaimBalance, error) {
	var bal models.ClaimBalance
	err := forUpdate(tx).Where("address = ?", address).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		bal = models.ClaimBalance{Address: address}
		if err := tx.Create(&bal).Error; err != nil {
			return nil, err
		}
		return &bal, nil
	}
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func allowlisted(tx *gorm.DB, caller string, mint bool) error {
	var entry models.LedgerAllowlist
	if err := tx.Where("address = ?", caller).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAllowlisted
		}
		return err
	}
	if mint && !entry.CanMint {
		return ErrNotAllowlisted
	}
	if !mint && !entry.CanBurn {
		return ErrNotAllowlisted
	}
	return nil
}

// Transfer moves funding units between two accounts.
func Transfer(tx *gorm.DB, from, to string, amount int64) error {
	if amount < 0 {
		return ErrZeroAmount
	}
	if amount == 0 {
		return nil
	}
	src, err := fetchAccount(tx, from)
	if err != nil {
		return err
	}
	if src.Balance < amount {
		return ErrInsufficientBalance
	}
	dst, err := fetchAccount(tx, to)
	if err != nil {
		return err
	}
	src.Balance -= amount
	dst.Balance += amount
	if err := tx.Save(src).Error; err != nil {
		return err
	}
	return tx.Save(dst).Error
}

// Approve sets the amount spender may move out of owner's funding balance.
func Approve(tx *gorm.DB, owner, spender string, amount int64) error {
	if amount < 0 {
		return ErrZeroAmount
	}
	var allowance models.LedgerAllowance
	err := forUpdate(tx).Where("owner = ? AND spender = ?", owner, spender).First(&allowance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.LedgerAllowance{Owner: owner, Spender: spender, Amount: amount}).Error
	}
	if err != nil {
		return err
	}
	allowance.Amount = amount
	return tx.Save(&allowance).Error
}

// TransferFrom moves funding units out of owner's balance on the strength of
// a prior allowance grant to spender.
func TransferFrom(tx *gorm.DB, spender, owner, to string, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	var allowance models.LedgerAllowance
	err := forUpdate(tx).Where("owner = ? AND spender = ?", owner, spender).First(&allowance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && allowance.Amount < amount) {
		return ErrInsufficientAllowance
	}
	if err != nil {
		return err
	}
	allowance.Amount -= amount
	if err := tx.Save(&allowance).Error; err != nil {
		return err
	}
	return Transfer(tx, owner, to, amount)
}

// Mint creates funding units. Caller must hold mint rights on the allowlist.
func Mint(tx *gorm.DB, caller, to string, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	if err := allowlisted(tx, caller, true); err != nil {
		return err
	}
	acct, err := fetchAccount(tx, to)
	if err != nil {
		return err
	}
	acct.Balance += amount
	return tx.Save(acct).Error
}

// Burn destroys funding units. Caller must hold burn rights on the allowlist.
func Burn(tx *gorm.DB, caller, from string, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	if err := allowlisted(tx, caller, false); err != nil {
		return err
	}
	acct, err := fetchAccount(tx, from)
	if err != nil {
		return err
	}
	if acct.Balance < amount {
		return ErrInsufficientBalance
	}
	acct.Balance -= amount
	return tx.Save(acct).Error
}

// ClaimTransfer moves claim tokens between two addresses.
func ClaimTransfer(tx *gorm.DB, from, to string, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	src, err := fetchClaimBalance(tx, from)
	if err != nil {
		return err
	}
	if src.Balance < amount {
		return ErrInsufficientBalance
	}
	dst, err := fetchClaimBalance(tx, to)
	if err != nil {
		return err
	}
	src.Balance -= amount
	dst.Balance += amount
	if err := tx.Save(src).Error; err != nil {
		return err
	}
	return tx.Save(dst).Error
}

// ClaimMint issues claim tokens 1:1 against contributions.
func ClaimMint(tx *gorm.DB, caller, to string, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	if err := allowlisted(tx, caller, true); err != nil {
		return err
	}
	bal, err := fetchClaimBalance(tx, to)
	if err != nil {
		return err
	}
	bal.Balance += amount
	return tx.Save(bal).Error
}

// ClaimBurn destroys claim tokens, used for withdrawals and spent votes.
func ClaimBurn(tx *gorm.DB, caller, from string, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	if err := allowlisted(tx, caller, false); err != nil {
		return err
	}
	bal, err := fetchClaimBalance(tx, from)
	if err != nil {
		return err
	}
	if bal.Balance < amount {
		return ErrInsufficientBalance
	}
	bal.Balance -= amount
	return tx.Save(bal).Error
}

// ClaimTotalSupply is the outstanding claim-token supply, snapshotted by each
// proposal at submission.
func ClaimTotalSupply(tx *gorm.DB) (int64, error) {
	var total int64
	err := tx.Model(&models.ClaimBalance{}).Select("COALESCE(SUM(balance), 0)").Scan(&total).Error
	return total, err
}

// HasRole reports whether address holds the named role.
func HasRole(tx *gorm.DB, role, address string) (bool, error) {
	var count int64
	err := tx.Model(&models.RoleConfig{}).Where("role = ? AND address = ?", role, address).Count(&count).Error
	return count > 0, err
}

// RequireRole is the per-operation access check for owner, operator and
// registrar tiers.
func RequireRole(tx *gorm.DB, role, address string) error {
	ok, err := HasRole(tx, role, address)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}
