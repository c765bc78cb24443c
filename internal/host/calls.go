package host

import (
	"errors"

	"treasury/internal/domain"
	"treasury/internal/governance"
)

// Donate records a simulated donation of the configured amount.
func (h *Host) Donate(caller domain.Principal) (domain.DonationRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, err := h.engine.Donate(h.call(caller), h.donationAmount)
	if err != nil {
		return rec, err
	}
	h.metrics.observeDonation(rec.Amount)
	h.metrics.setBalance(h.engine.TreasuryBalance())
	h.logger.Debug().Str("donor", caller.String()).Uint64("amount", rec.Amount).Msg("donation recorded")
	return rec, nil
}

// CreateProposal opens a funding proposal.
func (h *Host) CreateProposal(caller domain.Principal, req governance.ProposalRequest) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id, err := h.engine.CreateProposal(h.call(caller), req)
	if err != nil {
		return 0, err
	}
	h.metrics.observeProposal()
	h.logger.Info().Uint64("proposal_id", id).Str("creator", caller.String()).Uint64("amount", req.Amount).Msg("proposal created")
	return id, nil
}

// Vote casts the caller's vote. The returned status is meaningful even when
// err is non-nil.
func (h *Host) Vote(caller domain.Principal, proposalID uint64, approve bool) (domain.ProposalStatus, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status, err := h.engine.Vote(h.call(caller), proposalID, approve)
	if errors.Is(err, domain.ErrProposalExpired) {
		h.metrics.observeDecision(status)
		h.logger.Info().Uint64("proposal_id", proposalID).Msg("proposal expired and rejected")
		return status, err
	}
	if err != nil {
		return status, err
	}
	h.metrics.observeVote(approve)
	if status != domain.ProposalStatusActive {
		h.metrics.observeDecision(status)
		h.logger.Info().Uint64("proposal_id", proposalID).Str("status", string(status)).Msg("proposal decided")
	}
	return status, nil
}

// Execute releases an approved proposal's funds.
func (h *Host) Execute(caller domain.Principal, proposalID uint64) (*domain.FundingProposal, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.engine.Execute(h.call(caller), proposalID)
	if errors.Is(err, domain.ErrInsufficientFunds) {
		h.metrics.observeDecision(domain.ProposalStatusRejected)
		h.logger.Warn().Uint64("proposal_id", proposalID).Uint64("amount", p.Amount).
			Uint64("treasury", h.engine.TreasuryBalance()).Msg("treasury drained, proposal rejected")
		return p, err
	}
	if err != nil {
		return p, err
	}
	h.metrics.observeExecution(p.Amount)
	h.metrics.setBalance(h.engine.TreasuryBalance())
	h.logger.Info().Uint64("proposal_id", proposalID).Str("recipient", p.Recipient.String()).
		Uint64("amount", p.Amount).Msg("proposal executed")
	return p, nil
}

// RegisterCharity adds a charity project.
func (h *Host) RegisterCharity(caller domain.Principal, name, description string) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.RegisterCharity(h.call(caller), name, description)
}

// UpdateSettings changes governance parameters.
func (h *Host) UpdateSettings(caller domain.Principal, upd domain.SettingsUpdate) (domain.GovernanceSettings, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	settings, err := h.engine.UpdateSettings(h.call(caller), upd)
	if err != nil {
		return settings, err
	}
	h.logger.Info().Str("caller", caller.String()).
		Uint64("min_proposal_duration", settings.MinProposalDuration).
		Uint8("quorum_percentage", settings.QuorumPercentage).
		Uint8("approval_threshold", settings.ApprovalThreshold).
		Msg("governance settings updated")
	return settings, nil
}

// Donor returns the donor record for id.
func (h *Host) Donor(id domain.Principal) (*domain.Donor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Donor(id)
}

// Proposal returns proposal id.
func (h *Host) Proposal(id uint64) (*domain.FundingProposal, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Proposal(id)
}

// ListProposals returns all proposals ordered by id.
func (h *Host) ListProposals() []domain.FundingProposal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.ListProposals()
}

// ListActiveProposals returns active proposals ordered by id.
func (h *Host) ListActiveProposals() []domain.FundingProposal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.ListActiveProposals()
}

// CharityProject returns project id.
func (h *Host) CharityProject(id uint64) (*domain.CharityProject, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.CharityProject(id)
}

// ListCharityProjects returns all projects ordered by id.
func (h *Host) ListCharityProjects() []domain.CharityProject {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.ListCharityProjects()
}

// TreasuryBalance returns the spendable balance.
func (h *Host) TreasuryBalance() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.TreasuryBalance()
}

// Settings returns the governance settings.
func (h *Host) Settings() domain.GovernanceSettings {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Settings()
}
