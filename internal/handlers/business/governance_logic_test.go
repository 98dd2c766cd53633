package business

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assetpool/internal/models"
)

func registerProposerWithFee(t *testing.T, db *gorm.DB, address string) {
	t.Helper()
	fundAddress(t, db, address, ProposerRegistrationFee)
	require.NoError(t, RegisterProposer(db, address))
}

func TestRegisterProposer(t *testing.T) {
	db := newTestDB(t)
	setNow(t, baseTime)

	// No balance to cover the fee.
	err := RegisterProposer(db, contributorA)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	fundAddress(t, db, contributorA, ProposerRegistrationFee)
	require.NoError(t, RegisterProposer(db, contributorA))
	assert.Equal(t, int64(0), fundBalance(t, db, contributorA))
	assert.Equal(t, int64(ProposerRegistrationFee), fundBalance(t, db, TreasuryAccount))

	// Registration is one-shot even with a fresh balance.
	fundAddress(t, db, contributorA, ProposerRegistrationFee)
	err = RegisterProposer(db, contributorA)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestSubmitProposalPreconditions(t *testing.T) {
	db := newTestDB(t)
	setNow(t, baseTime)

	pool := newListedPool(t, db, 1000)

	_, err := SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	assert.ErrorIs(t, err, ErrPoolNotFunded)

	fundAddress(t, db, contributorA, 600)
	fundAddress(t, db, contributorB, 400)
	_, err = Contribute(db, pool.ID, contributorA, 600)
	require.NoError(t, err)
	_, err = Contribute(db, pool.ID, contributorB, 400)
	require.NoError(t, err)

	_, err = SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	assert.ErrorIs(t, err, ErrNotRegistered)

	fundAddress(t, db, contributorA, ProposerRegistrationFee)
	require.NoError(t, RegisterProposer(db, contributorA))

	_, err = SubmitProposal(db, pool.AssetID, contributorA, 101, 3600)
	assert.ErrorIs(t, err, ErrInvalidShare)
	_, err = SubmitProposal(db, pool.AssetID, contributorA, 40, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	proposal, err := SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	require.NoError(t, err)
	assert.Equal(t, nowFunc().Add(VotingWindow), proposal.VoteEndAt)
	assert.Equal(t, int64(1000), proposal.SupplySnapshot)

	// Past the submission window measured from acquisition.
	advanceNow(ProposalSubmissionWindow + time.Hour)
	_, err = SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	assert.ErrorIs(t, err, ErrWindowExpired)
}

func TestVoteMovesWeightIntoCustody(t *testing.T) {
	db := newTestDB(t)
	setNow(t, baseTime)

	pool := newFundedPool(t, db)
	registerProposerWithFee(t, db, contributorA)

	proposal, err := SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	require.NoError(t, err)

	assert.ErrorIs(t, Vote(db, proposal.ID, contributorA, 0), ErrZeroAmount)
	assert.ErrorIs(t, Vote(db, proposal.ID, contributorA, 601), ErrInsufficientBalance)
	assert.ErrorIs(t, Vote(db, 9999, contributorA, 100), ErrNoEligibleProposal)

	require.NoError(t, Vote(db, proposal.ID, contributorA, 500))
	assert.Equal(t, int64(100), claimBalance(t, db, contributorA))
	assert.Equal(t, int64(500), claimBalance(t, db, GovernanceCustody))

	var after models.Proposal
	require.NoError(t, db.First(&after, proposal.ID).Error)
	assert.Equal(t, int64(500), after.YesWeight)

	// Strictly one vote per address.
	assert.ErrorIs(t, Vote(db, proposal.ID, contributorA, 100), ErrAlreadyVoted)

	require.NoError(t, Vote(db, proposal.ID, contributorB, 400))
	require.NoError(t, db.First(&after, proposal.ID).Error)
	assert.Equal(t, int64(900), after.YesWeight)

	// The window closes at the deadline, inclusive.
	advanceNow(VotingWindow + time.Hour)
	assert.ErrorIs(t, Vote(db, proposal.ID, "addr-late", 1), ErrVotingClosed)
}

func TestExecuteWinningProposal(t *testing.T) {
	db := newTestDB(t)
	setNow(t, baseTime)

	pool := newFundedPool(t, db)
	registerProposerWithFee(t, db, contributorA)
	registerProposerWithFee(t, db, contributorB)

	first, err := SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	require.NoError(t, err)
	second, err := SubmitProposal(db, pool.AssetID, contributorB, 60, 7200)
	require.NoError(t, err)

	require.NoError(t, Vote(db, first.ID, contributorA, 300))
	require.NoError(t, Vote(db, second.ID, contributorB, 400))

	// Voting still open.
	_, err = ExecuteWinningProposal(db, pool.AssetID)
	assert.ErrorIs(t, err, ErrNoEligibleProposal)

	advanceNow(VotingWindow + time.Hour)
	record, err := ExecuteWinningProposal(db, pool.AssetID)
	require.NoError(t, err)
	assert.Equal(t, contributorB, record.Developer)
	assert.Equal(t, int64(60), record.SharePercent)
	assert.Equal(t, int64(7200), record.Duration)

	// All locked weight for the asset is burned, winner and loser alike.
	assert.Equal(t, int64(0), claimBalance(t, db, GovernanceCustody))

	var winner models.Proposal
	require.NoError(t, db.First(&winner, second.ID).Error)
	assert.True(t, winner.Executed)

	// One development record per asset, ever.
	_, err = ExecuteWinningProposal(db, pool.AssetID)
	assert.ErrorIs(t, err, ErrAlreadyDeveloped)
	_, err = SubmitProposal(db, pool.AssetID, contributorA, 10, 3600)
	assert.ErrorIs(t, err, ErrAlreadyDeveloped)
}

func TestExecuteQuorumNotReached(t *testing.T) {
	db := newTestDB(t)
	setNow(t, baseTime)

	pool := newFundedPool(t, db)
	registerProposerWithFee(t, db, contributorA)

	proposal, err := SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	require.NoError(t, err)

	// Quorum is 30% of the 1000-unit acquisition price; 299 falls short.
	require.NoError(t, Vote(db, proposal.ID, contributorA, 299))

	advanceNow(VotingWindow + time.Hour)
	_, err = ExecuteWinningProposal(db, pool.AssetID)
	assert.ErrorIs(t, err, ErrQuorumNotReached)

	// The locked weight stays in custody while the asset stays undeveloped.
	assert.Equal(t, int64(299), claimBalance(t, db, GovernanceCustody))
}

func TestExecuteTieGoesToFirstSubmitted(t *testing.T) {
	db := newTestDB(t)
	setNow(t, baseTime)

	pool := newFundedPool(t, db)
	registerProposerWithFee(t, db, contributorA)
	registerProposerWithFee(t, db, contributorB)

	first, err := SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	require.NoError(t, err)
	second, err := SubmitProposal(db, pool.AssetID, contributorB, 60, 7200)
	require.NoError(t, err)
	require.Less(t, first.ID, second.ID)

	require.NoError(t, Vote(db, first.ID, contributorA, 400))
	require.NoError(t, Vote(db, second.ID, contributorB, 400))

	advanceNow(VotingWindow + time.Hour)
	record, err := ExecuteWinningProposal(db, pool.AssetID)
	require.NoError(t, err)
	assert.Equal(t, contributorA, record.Developer)
}

func TestGovernanceKeeperFlow(t *testing.T) {
	db := newTestDB(t)
	setNow(t, baseTime)

	pool := newFundedPool(t, db)
	registerProposerWithFee(t, db, contributorA)

	proposal, err := SubmitProposal(db, pool.AssetID, contributorA, 40, 3600)
	require.NoError(t, err)
	require.NoError(t, Vote(db, proposal.ID, contributorA, 600))

	due, _, err := GovernanceActionDue(db)
	require.NoError(t, err)
	assert.False(t, due)

	advanceNow(VotingWindow + time.Hour)
	due, assetID, err := GovernanceActionDue(db)
	require.NoError(t, err)
	require.True(t, due)
	assert.Equal(t, pool.AssetID, assetID)

	require.NoError(t, PerformGovernanceDueAction(db, assetID))
	dev, err := DevelopmentRecordFor(db, pool.AssetID)
	require.NoError(t, err)
	require.NotNil(t, dev)

	// Racing keeper retries the same payload without harm.
	require.NoError(t, PerformGovernanceDueAction(db, assetID))

	due, _, err = GovernanceActionDue(db)
	require.NoError(t, err)
	assert.False(t, due)
}
