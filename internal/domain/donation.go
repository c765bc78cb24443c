package domain

import "time"

// DonationRecord is a single immutable contribution entry.
type DonationRecord struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Amount    uint64    `json:"amount" yaml:"amount"`
}

// Donor tracks a contributor's cumulative donations and the voting power
// derived from them.
type Donor struct {
	ID              Principal        `json:"id" yaml:"id"`
	TotalDonations  uint64           `json:"total_donations" yaml:"total_donations"`
	VotingPower     uint64           `json:"voting_power" yaml:"voting_power"`
	DonationHistory []DonationRecord `json:"donation_history" yaml:"donation_history"`
}

// Clone returns a deep copy of the donor.
func (d *Donor) Clone() *Donor {
	if d == nil {
		return nil
	}
	out := *d
	out.DonationHistory = append([]DonationRecord(nil), d.DonationHistory...)
	return &out
}
