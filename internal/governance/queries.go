package governance

import (
	"treasury/internal/domain"
)

// Donor returns a copy of the donor record for id.
func (e *Engine) Donor(id domain.Principal) (*domain.Donor, error) {
	d, ok := e.state.Donors[id]
	if !ok {
		return nil, domain.ErrDonorNotFound
	}
	return d.Clone(), nil
}

// Proposal returns a copy of proposal id.
func (e *Engine) Proposal(id uint64) (*domain.FundingProposal, error) {
	p, ok := e.proposal(id)
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	return p.Clone(), nil
}

// ListProposals returns every proposal ordered by id.
func (e *Engine) ListProposals() []domain.FundingProposal {
	return e.filterProposals(func(*domain.FundingProposal) bool { return true })
}

// ListActiveProposals returns the active proposals ordered by id.
func (e *Engine) ListActiveProposals() []domain.FundingProposal {
	return e.filterProposals(func(p *domain.FundingProposal) bool {
		return p.Status == domain.ProposalStatusActive
	})
}

func (e *Engine) filterProposals(keep func(*domain.FundingProposal) bool) []domain.FundingProposal {
	out := make([]domain.FundingProposal, 0, len(e.state.Proposals))
	for _, p := range e.state.Proposals {
		if keep(p) {
			out = append(out, *p.Clone())
		}
	}
	return out
}

// CharityProject returns a copy of project id.
func (e *Engine) CharityProject(id uint64) (*domain.CharityProject, error) {
	if id >= uint64(len(e.state.CharityProjects)) {
		return nil, domain.ErrCharityNotFound
	}
	return e.state.CharityProjects[id].Clone(), nil
}

// ListCharityProjects returns every project ordered by id.
func (e *Engine) ListCharityProjects() []domain.CharityProject {
	out := make([]domain.CharityProject, 0, len(e.state.CharityProjects))
	for _, c := range e.state.CharityProjects {
		out = append(out, *c.Clone())
	}
	return out
}

// TreasuryBalance returns the spendable treasury total.
func (e *Engine) TreasuryBalance() uint64 {
	return e.state.TreasuryTotal
}
