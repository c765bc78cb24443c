package domain

import "time"

// CharityProject is a registry entry for an organisation that may receive
// treasury funds.
type CharityProject struct {
	ID            uint64    `json:"id" yaml:"id"`
	Owner         Principal `json:"owner" yaml:"owner"`
	Name          string    `json:"name" yaml:"name"`
	Description   string    `json:"description" yaml:"description"`
	TotalReceived uint64    `json:"total_received" yaml:"total_received"`
	Proposals     []uint64  `json:"proposals" yaml:"proposals"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// Clone returns a deep copy of the project.
func (c *CharityProject) Clone() *CharityProject {
	if c == nil {
		return nil
	}
	out := *c
	out.Proposals = append([]uint64(nil), c.Proposals...)
	return &out
}
