package domain

import "time"

// ProposalStatus enumerates the lifecycle states of a funding proposal.
type ProposalStatus string

const (
	ProposalStatusActive   ProposalStatus = "active"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExecuted ProposalStatus = "executed"
	// ProposalStatusCancelled is reserved; no operation produces it yet.
	ProposalStatusCancelled ProposalStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusActive, ProposalStatusApproved, ProposalStatusRejected,
		ProposalStatusExecuted, ProposalStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalStatusExecuted || s == ProposalStatusRejected || s == ProposalStatusCancelled
}

// Vote is a single donor's weighted ballot on a proposal.
type Vote struct {
	Donor       Principal `json:"donor" yaml:"donor"`
	VotingPower uint64    `json:"voting_power" yaml:"voting_power"`
	Approved    bool      `json:"approved" yaml:"approved"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}

// FundingProposal requests a release of treasury funds to a recipient.
type FundingProposal struct {
	ID          uint64         `json:"id" yaml:"id"`
	Creator     Principal      `json:"creator" yaml:"creator"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Recipient   Principal      `json:"recipient" yaml:"recipient"`
	Amount      uint64         `json:"amount" yaml:"amount"`
	Status      ProposalStatus `json:"status" yaml:"status"`
	Votes       []Vote         `json:"votes" yaml:"votes"`
	YesVotes    uint64         `json:"yes_votes" yaml:"yes_votes"`
	NoVotes     uint64         `json:"no_votes" yaml:"no_votes"`
	CreatedAt   time.Time      `json:"created_at" yaml:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at" yaml:"expires_at"`
	ExecutedAt  *time.Time     `json:"executed_at,omitempty" yaml:"executed_at,omitempty"`
}

// HasVoted reports whether donor already cast a vote on the proposal.
func (p *FundingProposal) HasVoted(donor Principal) bool {
	for _, v := range p.Votes {
		if v.Donor == donor {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the proposal.
func (p *FundingProposal) Clone() *FundingProposal {
	if p == nil {
		return nil
	}
	out := *p
	out.Votes = append([]Vote(nil), p.Votes...)
	if p.ExecutedAt != nil {
		at := *p.ExecutedAt
		out.ExecutedAt = &at
	}
	return &out
}
