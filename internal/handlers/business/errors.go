package business

import "errors"

// Every precondition in the pool and governance engines fails with one of
// these sentinels so callers can tell the conditions apart. All of them are
// terminal: the enclosing transaction rolls back and nothing is retried here.
var (
	ErrZeroAmount            = errors.New("amount must be greater than zero")
	ErrTargetExceeded        = errors.New("contribution exceeds remaining pool capacity")
	ErrPoolFunded            = errors.New("pool already funded")
	ErrPoolNotFunded         = errors.New("pool not yet funded")
	ErrPoolNotFound          = errors.New("pool not found")
	ErrNoActiveStake         = errors.New("no active stake")
	ErrBonusNotDue           = errors.New("completion bonus not yet unlocked")
	ErrBonusAlreadyPaid      = errors.New("completion bonus already paid")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNotAllowlisted        = errors.New("caller not on mint/burn allowlist")
	ErrPermissionDenied      = errors.New("caller lacks required role")
	ErrInvalidRate           = errors.New("rate must be between 0 and 100")

	ErrAlreadyRegistered  = errors.New("proposer already registered")
	ErrNotRegistered      = errors.New("proposer not registered")
	ErrAlreadyRecorded    = errors.New("acquisition already recorded for asset")
	ErrNotAcquired        = errors.New("asset has no acquisition record")
	ErrAlreadyDeveloped   = errors.New("development record already exists for asset")
	ErrWindowExpired      = errors.New("proposal submission window expired")
	ErrInvalidShare       = errors.New("share percent must not exceed 100")
	ErrInvalidDuration    = errors.New("project duration must be positive")
	ErrVotingClosed       = errors.New("voting period has ended")
	ErrAlreadyVoted       = errors.New("address already voted on this proposal")
	ErrNoEligibleProposal = errors.New("no execution-eligible proposal")
	ErrQuorumNotReached   = errors.New("winning proposal below quorum")

	ErrListingNotFound   = errors.New("listing not found")
	ErrListingSold       = errors.New("listing already sold")
	ErrUnauthorizedBuyer = errors.New("buyer not authorized for listing")
	ErrAssetNotFound     = errors.New("asset not found")
)
