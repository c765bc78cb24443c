package governance

import (
	"treasury/internal/domain"
)

// UpdateSettings applies the non-nil fields of upd in order: minimum
// duration, quorum, threshold. A field out of range stops the update with
// an error; fields applied before it stay applied.
func (e *Engine) UpdateSettings(call Call, upd domain.SettingsUpdate) (domain.GovernanceSettings, error) {
	if err := checkCaller(call); err != nil {
		return domain.GovernanceSettings{}, err
	}
	if e.authorize != nil && !e.authorize(call.Caller) {
		return e.state.Settings, domain.ErrUnauthorized
	}

	if upd.MinProposalDuration != nil {
		e.state.Settings.MinProposalDuration = *upd.MinProposalDuration
	}
	if upd.QuorumPercentage != nil {
		if *upd.QuorumPercentage > 100 {
			return e.state.Settings, domain.ErrQuorumRange
		}
		e.state.Settings.QuorumPercentage = *upd.QuorumPercentage
	}
	if upd.ApprovalThreshold != nil {
		if *upd.ApprovalThreshold > 100 {
			return e.state.Settings, domain.ErrThresholdRange
		}
		e.state.Settings.ApprovalThreshold = *upd.ApprovalThreshold
	}
	return e.state.Settings, nil
}

// Settings returns the current governance settings.
func (e *Engine) Settings() domain.GovernanceSettings {
	return e.state.Settings
}
