package governance

import (
	"math"
	"time"

	"treasury/internal/domain"
)

// ProposalRequest holds the caller-supplied fields of a new proposal.
type ProposalRequest struct {
	Title           string
	Description     string
	Recipient       domain.Principal
	Amount          uint64
	DurationSeconds uint64
}

const maxDurationSeconds = uint64(math.MaxInt64 / int64(time.Second))

// CreateProposal opens a new active proposal and returns its id.
func (e *Engine) CreateProposal(call Call, req ProposalRequest) (uint64, error) {
	if err := checkCaller(call); err != nil {
		return 0, err
	}
	if req.Title == "" || req.Description == "" {
		return 0, domain.ErrEmptyProposal
	}
	if req.Amount == 0 {
		return 0, domain.ErrZeroAmount
	}
	if _, ok := e.state.Donors[call.Caller]; !ok {
		return 0, domain.ErrNotDonorCreate
	}

	duration := max(req.DurationSeconds, e.state.Settings.MinProposalDuration)
	duration = min(duration, maxDurationSeconds)

	if req.Amount > e.state.TreasuryTotal {
		return 0, domain.ErrExceedsTreasury
	}

	id := e.state.NextProposalID
	e.state.NextProposalID++
	e.state.Proposals = append(e.state.Proposals, &domain.FundingProposal{
		ID:          id,
		Creator:     call.Caller,
		Title:       req.Title,
		Description: req.Description,
		Recipient:   req.Recipient,
		Amount:      req.Amount,
		Status:      domain.ProposalStatusActive,
		Votes:       []domain.Vote{},
		CreatedAt:   call.Now,
		ExpiresAt:   call.Now.Add(time.Duration(duration) * time.Second),
	})
	return id, nil
}

// Vote records the caller's weighted ballot and tallies the proposal. It
// returns the proposal status after the tally.
//
// A vote arriving after expiry is not recorded; the proposal is moved to
// rejected and ErrProposalExpired is returned.
func (e *Engine) Vote(call Call, proposalID uint64, approve bool) (domain.ProposalStatus, error) {
	if err := checkCaller(call); err != nil {
		return "", err
	}
	donor, ok := e.state.Donors[call.Caller]
	if !ok {
		return "", domain.ErrNotDonorVote
	}
	totalVotingPower := e.TotalVotingPower()
	settings := e.state.Settings

	p, ok := e.proposal(proposalID)
	if !ok {
		return "", domain.ErrProposalNotFound
	}
	if p.Status != domain.ProposalStatusActive {
		return p.Status, domain.ErrProposalNotActive
	}
	if call.Now.After(p.ExpiresAt) {
		p.Status = domain.ProposalStatusRejected
		return p.Status, domain.ErrProposalExpired
	}
	if p.HasVoted(call.Caller) {
		return p.Status, domain.ErrAlreadyVoted
	}

	p.Votes = append(p.Votes, domain.Vote{
		Donor:       call.Caller,
		VotingPower: donor.VotingPower,
		Approved:    approve,
		Timestamp:   call.Now,
	})
	if approve {
		p.YesVotes += donor.VotingPower
	} else {
		p.NoVotes += donor.VotingPower
	}

	switch Tally(TallyInput{
		TotalVotingPower:  totalVotingPower,
		YesVotes:          p.YesVotes,
		NoVotes:           p.NoVotes,
		QuorumPercentage:  settings.QuorumPercentage,
		ApprovalThreshold: settings.ApprovalThreshold,
	}) {
	case Approve:
		p.Status = domain.ProposalStatusApproved
	case Reject:
		p.Status = domain.ProposalStatusRejected
	}
	return p.Status, nil
}

// Execute releases an approved proposal's amount from the treasury.
//
// If the treasury no longer covers the amount the proposal is moved to
// rejected and ErrInsufficientFunds is returned.
func (e *Engine) Execute(call Call, proposalID uint64) (*domain.FundingProposal, error) {
	if err := checkCaller(call); err != nil {
		return nil, err
	}
	p, ok := e.proposal(proposalID)
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	if p.Status != domain.ProposalStatusApproved {
		return p.Clone(), domain.ErrProposalNotApproved
	}
	if p.Amount > e.state.TreasuryTotal {
		p.Status = domain.ProposalStatusRejected
		return p.Clone(), domain.ErrInsufficientFunds
	}

	executedAt := call.Now
	p.Status = domain.ProposalStatusExecuted
	p.ExecutedAt = &executedAt
	e.state.TreasuryTotal -= p.Amount
	return p.Clone(), nil
}
