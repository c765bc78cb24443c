package domain

const (
	DefaultMinProposalDuration uint64 = 86400 * 3
	DefaultQuorumPercentage    uint8  = 25
	DefaultApprovalThreshold   uint8  = 51
)

// GovernanceSettings holds the process-wide voting parameters.
type GovernanceSettings struct {
	MinProposalDuration uint64 `json:"min_proposal_duration" yaml:"min_proposal_duration"` // seconds
	QuorumPercentage    uint8  `json:"quorum_percentage" yaml:"quorum_percentage"`
	ApprovalThreshold   uint8  `json:"approval_threshold" yaml:"approval_threshold"`
}

// DefaultGovernanceSettings returns a 3 day minimum duration, 25% quorum and
// 51% approval threshold.
func DefaultGovernanceSettings() GovernanceSettings {
	return GovernanceSettings{
		MinProposalDuration: DefaultMinProposalDuration,
		QuorumPercentage:    DefaultQuorumPercentage,
		ApprovalThreshold:   DefaultApprovalThreshold,
	}
}

// SettingsUpdate carries optional replacements; nil fields are left as is.
type SettingsUpdate struct {
	MinProposalDuration *uint64 `json:"min_proposal_duration,omitempty"`
	QuorumPercentage    *uint8  `json:"quorum_percentage,omitempty"`
	ApprovalThreshold   *uint8  `json:"approval_threshold,omitempty"`
}
