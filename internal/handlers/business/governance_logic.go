package business

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"assetpool/internal/models"
)

// Governance engine. Proposals move Open -> Closed-Pending -> Executed; a
// closed proposal that never wins simply stays inert. All mutations lock the
// asset's pool row first so governance and pool operations on one asset are
// serialized against each other.

// RegisterProposer charges the one-time registration fee into the treasury.
// Duplicate registration fails loudly.
func RegisterProposer(db *gorm.DB, address string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.ProposerRegistration
		err := tx.Where("address = ?", address).First(&existing).Error
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := Transfer(tx, address, TreasuryAccount, ProposerRegistrationFee); err != nil {
			return err
		}
		return tx.Create(&models.ProposerRegistration{
			Address: address,
			FeePaid: ProposerRegistrationFee,
		}).Error
	})
}

// SubmitProposal opens a development proposal for a funded asset. The
// submission window runs from the acquisition time; the voting window runs
// from submission.
func SubmitProposal(db *gorm.DB, assetID uint, proposer string, sharePercent, duration int64) (*models.Proposal, error) {
	if sharePercent < 0 || sharePercent > 100 {
		return nil, ErrInvalidShare
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	var proposal *models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		pool, err := lockPoolByAsset(tx, assetID)
		if err != nil {
			return err
		}
		if !pool.Funded {
			return ErrPoolNotFunded
		}
		var registration models.ProposerRegistration
		if err := tx.Where("address = ?", proposer).First(&registration).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotRegistered
			}
			return err
		}
		dev, err := DevelopmentRecordFor(tx, assetID)
		if err != nil {
			return err
		}
		if dev != nil {
			return ErrAlreadyDeveloped
		}
		acq, err := Acquisition(tx, assetID)
		if err != nil {
			return err
		}
		now := nowFunc()
		if now.After(acq.AcquiredAt.Add(ProposalSubmissionWindow)) {
			return ErrWindowExpired
		}
		supply, err := ClaimTotalSupply(tx)
		if err != nil {
			return err
		}
		proposal = &models.Proposal{
			AssetID:        assetID,
			Proposer:       proposer,
			SharePercent:   sharePercent,
			Duration:       duration,
			VoteEndAt:      now.Add(VotingWindow),
			SupplySnapshot: supply,
		}
		return tx.Create(proposal).Error
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// Vote locks amount claim tokens behind a proposal, strictly once per
// address. The weight moves into governance custody and is burned when the
// asset's winner executes; it is never returned.
func Vote(db *gorm.DB, proposalID uint, address string, amount int64) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal
		if err := forUpdate(tx).First(&proposal, proposalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEligibleProposal
			}
			return err
		}
		if !nowFunc().Before(proposal.VoteEndAt) {
			return ErrVotingClosed
		}
		var existing models.Vote
		err := tx.Where("proposal_id = ? AND address = ?", proposalID, address).First(&existing).Error
		if err == nil {
			return ErrAlreadyVoted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := ClaimTransfer(tx, address, GovernanceCustody, amount); err != nil {
			return err
		}
		if err := tx.Create(&models.Vote{
			ProposalID: proposalID,
			Address:    address,
			Weight:     amount,
		}).Error; err != nil {
			return err
		}
		proposal.YesWeight += amount
		return tx.Save(&proposal).Error
	})
}

// lockedWeightForAsset sums every vote ever cast on the asset's proposals.
// It equals the slice of governance custody attributable to the asset, since
// an asset's votes are burned at most once.
func lockedWeightForAsset(tx *gorm.DB, assetID uint) (int64, error) {
	var total int64
	err := tx.Model(&models.Vote{}).
		Joins("JOIN proposal ON proposal.id = vote.proposal_id").
		Where("proposal.asset_id = ?", assetID).
		Select("COALESCE(SUM(vote.weight), 0)").
		Scan(&total).Error
	return total, err
}

// selectWinner picks the candidate with the strictly greatest yes weight.
// Ties go to the lowest proposal id, i.e. first submitted wins.
func selectWinner(candidates []models.Proposal) *models.Proposal {
	var winner *models.Proposal
	for i := range candidates {
		if winner == nil || candidates[i].YesWeight > winner.YesWeight {
			winner = &candidates[i]
		}
	}
	return winner
}

// ExecuteWinningProposal closes out governance for an asset: among expired,
// unexecuted proposals the highest-weighted one that clears quorum mints the
// development record; all locked voting weight for the asset is burned.
// Quorum is measured against the asset's acquisition price, not total claim
// supply.
func ExecuteWinningProposal(db *gorm.DB, assetID uint) (*models.DevelopmentRecord, error) {
	var record *models.DevelopmentRecord
	var winnerID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockPoolByAsset(tx, assetID); err != nil {
			return err
		}
		dev, err := DevelopmentRecordFor(tx, assetID)
		if err != nil {
			return err
		}
		if dev != nil {
			return ErrAlreadyDeveloped
		}
		var candidates []models.Proposal
		if err := forUpdate(tx).
			Where("asset_id = ? AND vote_end_at <= ? AND executed = ?", assetID, nowFunc(), false).
			Order("id ASC").
			Find(&candidates).Error; err != nil {
			return err
		}
		winner := selectWinner(candidates)
		if winner == nil {
			return ErrNoEligibleProposal
		}
		acq, err := Acquisition(tx, assetID)
		if err != nil {
			return err
		}
		minVotes := acq.Price * QuorumPercent / 100
		if winner.YesWeight < minVotes {
			return ErrQuorumNotReached
		}

		record = &models.DevelopmentRecord{
			AssetID:      assetID,
			Developer:    winner.Proposer,
			SharePercent: winner.SharePercent,
			StartAt:      nowFunc(),
			Duration:     winner.Duration,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		locked, err := lockedWeightForAsset(tx, assetID)
		if err != nil {
			return err
		}
		if locked > 0 {
			if err := ClaimBurn(tx, SystemAccount, GovernanceCustody, locked); err != nil {
				return err
			}
		}
		winner.Executed = true
		winnerID = winner.ID
		return tx.Save(winner).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"asset_id":    assetID,
		"proposal_id": winnerID,
		"developer":   record.Developer,
	}).Info("winning proposal executed")
	publishEvent(EventProposalExecuted, map[string]interface{}{
		"asset_id":    assetID,
		"proposal_id": winnerID,
		"developer":   record.Developer,
	})
	return record, nil
}

// GovernanceActionDue scans expired, unexecuted proposals and reports the
// first asset whose winner would execute right now. Linear in open proposal
// count by design.
func GovernanceActionDue(db *gorm.DB) (bool, uint, error) {
	var expired []models.Proposal
	if err := db.
		Where("vote_end_at <= ? AND executed = ?", nowFunc(), false).
		Order("id ASC").
		Find(&expired).Error; err != nil {
		return false, 0, err
	}
	seen := make(map[uint]bool)
	for _, p := range expired {
		if seen[p.AssetID] {
			continue
		}
		seen[p.AssetID] = true
		dev, err := DevelopmentRecordFor(db, p.AssetID)
		if err != nil {
			return false, 0, err
		}
		if dev != nil {
			continue
		}
		acq, err := Acquisition(db, p.AssetID)
		if err != nil {
			if errors.Is(err, ErrNotAcquired) {
				continue
			}
			return false, 0, err
		}
		var candidates []models.Proposal
		if err := db.
			Where("asset_id = ? AND vote_end_at <= ? AND executed = ?", p.AssetID, nowFunc(), false).
			Order("id ASC").
			Find(&candidates).Error; err != nil {
			return false, 0, err
		}
		winner := selectWinner(candidates)
		if winner == nil {
			continue
		}
		if winner.YesWeight >= acq.Price*QuorumPercent/100 {
			return true, p.AssetID, nil
		}
	}
	return false, 0, nil
}

// PerformGovernanceDueAction re-validates and executes the asset's winning
// proposal. Stale or racing polls land on a precondition error and are
// swallowed; the keeper must be able to hit this repeatedly without harm.
func PerformGovernanceDueAction(db *gorm.DB, assetID uint) error {
	_, err := ExecuteWinningProposal(db, assetID)
	if errors.Is(err, ErrAlreadyDeveloped) ||
		errors.Is(err, ErrNoEligibleProposal) ||
		errors.Is(err, ErrQuorumNotReached) {
		return nil
	}
	return err
}
