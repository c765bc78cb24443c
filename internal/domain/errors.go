package domain

import "errors"

// ErrAnonymousCaller aborts a call before any state is read or written.
var ErrAnonymousCaller = errors.New("anonymous callers are not allowed")

var (
	ErrDonorNotFound       = errors.New("donor not found")
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrCharityNotFound     = errors.New("charity project not found")
	ErrEmptyProposal       = errors.New("title and description cannot be empty")
	ErrZeroAmount          = errors.New("amount must be greater than zero")
	ErrNotDonorCreate      = errors.New("only donors can create proposals")
	ErrExceedsTreasury     = errors.New("requested amount exceeds available funds")
	ErrNotDonorVote        = errors.New("only donors can vote")
	ErrProposalNotActive   = errors.New("proposal is not active")
	ErrProposalExpired     = errors.New("proposal has expired")
	ErrAlreadyVoted        = errors.New("already voted on this proposal")
	ErrProposalNotApproved = errors.New("only approved proposals can be executed")
	ErrInsufficientFunds   = errors.New("insufficient funds in treasury")
	ErrEmptyCharity        = errors.New("name and description cannot be empty")
	ErrQuorumRange         = errors.New("quorum percentage cannot exceed 100")
	ErrThresholdRange      = errors.New("approval threshold cannot exceed 100")
	ErrAmountOverflow      = errors.New("amount overflows treasury")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrSnapshotInvalid     = errors.New("snapshot invalid")
)
