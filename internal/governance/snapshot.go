package governance

import (
	"encoding/json"
	"fmt"

	"treasury/internal/domain"
)

// SnapshotVersion identifies the layout written by Capture.
const SnapshotVersion = 1

type snapshotEnvelope struct {
	Version int    `json:"version"`
	State   *State `json:"state"`
}

// Capture serializes the complete state.
func (e *Engine) Capture() ([]byte, error) {
	data, err := json.Marshal(snapshotEnvelope{Version: SnapshotVersion, State: e.state})
	if err != nil {
		return nil, fmt.Errorf("governance: encode snapshot: %w", err)
	}
	return data, nil
}

// Install replaces the whole state with the decoded snapshot. The current
// state is untouched unless data decodes and validates.
func (e *Engine) Install(data []byte) error {
	state, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	e.state = state
	return nil
}

// DecodeSnapshot parses and validates a blob produced by Capture.
func DecodeSnapshot(data []byte) (*State, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrSnapshotInvalid, err)
	}
	if env.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", domain.ErrSnapshotInvalid, env.Version)
	}
	if env.State == nil {
		return nil, fmt.Errorf("%w: missing state", domain.ErrSnapshotInvalid)
	}
	if err := env.State.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotInvalid, err)
	}
	return env.State, nil
}

func (s *State) validate() error {
	if s.Donors == nil {
		s.Donors = make(map[domain.Principal]*domain.Donor)
	}
	if s.Settings.QuorumPercentage > 100 || s.Settings.ApprovalThreshold > 100 {
		return fmt.Errorf("settings out of range")
	}

	var total uint64
	for id, d := range s.Donors {
		if d == nil || d.ID != id {
			return fmt.Errorf("donor %q: key mismatch", id)
		}
		if d.VotingPower != d.TotalDonations {
			return fmt.Errorf("donor %q: voting power %d != donations %d", id, d.VotingPower, d.TotalDonations)
		}
		if total+d.VotingPower < total {
			return fmt.Errorf("total voting power overflows")
		}
		total += d.VotingPower
	}
	if s.TreasuryTotal > total {
		return fmt.Errorf("treasury %d exceeds total donations %d", s.TreasuryTotal, total)
	}

	if s.NextProposalID != uint64(len(s.Proposals)) {
		return fmt.Errorf("next proposal id %d != %d proposals", s.NextProposalID, len(s.Proposals))
	}
	for i, p := range s.Proposals {
		if p == nil || p.ID != uint64(i) {
			return fmt.Errorf("proposal at index %d: id mismatch", i)
		}
		if !p.Status.Valid() {
			return fmt.Errorf("proposal %d: unknown status %q", p.ID, p.Status)
		}
		seen := make(map[domain.Principal]struct{}, len(p.Votes))
		for _, v := range p.Votes {
			if _, dup := seen[v.Donor]; dup {
				return fmt.Errorf("proposal %d: duplicate vote by %q", p.ID, v.Donor)
			}
			seen[v.Donor] = struct{}{}
		}
	}

	if s.NextProjectID != uint64(len(s.CharityProjects)) {
		return fmt.Errorf("next project id %d != %d projects", s.NextProjectID, len(s.CharityProjects))
	}
	for i, c := range s.CharityProjects {
		if c == nil || c.ID != uint64(i) {
			return fmt.Errorf("charity project at index %d: id mismatch", i)
		}
	}
	return nil
}
