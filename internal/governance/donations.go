package governance

import (
	"treasury/internal/domain"
)

// Donate credits amount to the caller's donor record, voting power and the
// treasury. Unknown callers become donors on their first donation.
func (e *Engine) Donate(call Call, amount uint64) (domain.DonationRecord, error) {
	if err := checkCaller(call); err != nil {
		return domain.DonationRecord{}, err
	}
	// Total voting power is the sum of every donation ever made, so it bounds
	// each donor total and the treasury.
	if total := e.TotalVotingPower(); total+amount < total {
		return domain.DonationRecord{}, domain.ErrAmountOverflow
	}

	donor, ok := e.state.Donors[call.Caller]
	if !ok {
		donor = &domain.Donor{ID: call.Caller}
		e.state.Donors[call.Caller] = donor
	}

	record := domain.DonationRecord{Timestamp: call.Now, Amount: amount}
	donor.TotalDonations += amount
	donor.VotingPower += amount
	donor.DonationHistory = append(donor.DonationHistory, record)

	e.state.TreasuryTotal += amount
	return record, nil
}
