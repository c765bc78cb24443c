package governance

import (
	"time"

	"treasury/internal/domain"
)

// Call carries the per-request context supplied by the host.
type Call struct {
	Caller domain.Principal
	Now    time.Time
}

// State is the complete governance state. Proposals and charity projects
// are indexed by their id.
type State struct {
	Donors          map[domain.Principal]*domain.Donor `json:"donors" yaml:"donors"`
	Proposals       []*domain.FundingProposal          `json:"proposals" yaml:"proposals"`
	CharityProjects []*domain.CharityProject           `json:"charity_projects" yaml:"charity_projects"`
	TreasuryTotal   uint64                             `json:"treasury_total" yaml:"treasury_total"`
	NextProposalID  uint64                             `json:"next_proposal_id" yaml:"next_proposal_id"`
	NextProjectID   uint64                             `json:"next_project_id" yaml:"next_project_id"`
	Settings        domain.GovernanceSettings          `json:"governance_settings" yaml:"governance_settings"`
}

// NewState returns an empty state with default settings.
func NewState() *State {
	return &State{
		Donors:   make(map[domain.Principal]*domain.Donor),
		Settings: domain.DefaultGovernanceSettings(),
	}
}

// SettingsAuthorizer decides whether caller may change governance settings.
type SettingsAuthorizer func(caller domain.Principal) bool

// AllowPrincipals returns an authorizer accepting only the listed callers.
// With an empty list every non-anonymous caller is accepted.
func AllowPrincipals(admins ...domain.Principal) SettingsAuthorizer {
	if len(admins) == 0 {
		return nil
	}
	allowed := make(map[domain.Principal]struct{}, len(admins))
	for _, a := range admins {
		allowed[a] = struct{}{}
	}
	return func(caller domain.Principal) bool {
		_, ok := allowed[caller]
		return ok
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithSettingsAuthorizer restricts UpdateSettings to callers accepted by a.
func WithSettingsAuthorizer(a SettingsAuthorizer) Option {
	return func(e *Engine) { e.authorize = a }
}

// WithState starts the engine from an existing state.
func WithState(s *State) Option {
	return func(e *Engine) {
		if s != nil {
			e.state = s
		}
	}
}

// Engine applies governance operations to a State.
type Engine struct {
	state     *State
	authorize SettingsAuthorizer
}

// NewEngine constructs an engine over a fresh state.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{state: NewState()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func checkCaller(call Call) error {
	if call.Caller.IsAnonymous() {
		return domain.ErrAnonymousCaller
	}
	return nil
}

func (e *Engine) proposal(id uint64) (*domain.FundingProposal, bool) {
	if id >= uint64(len(e.state.Proposals)) {
		return nil, false
	}
	return e.state.Proposals[id], true
}

// TotalVotingPower sums the voting power of every donor.
func (e *Engine) TotalVotingPower() uint64 {
	var total uint64
	for _, d := range e.state.Donors {
		total += d.VotingPower
	}
	return total
}
