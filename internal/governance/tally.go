package governance

import "math/bits"

// Outcome is the result of a tally.
type Outcome int

const (
	Undecided Outcome = iota
	Approve
	Reject
)

func (o Outcome) String() string {
	switch o {
	case Approve:
		return "approved"
	case Reject:
		return "rejected"
	default:
		return "undecided"
	}
}

// TallyInput is everything the decision depends on.
type TallyInput struct {
	TotalVotingPower  uint64
	YesVotes          uint64
	NoVotes           uint64
	QuorumPercentage  uint8
	ApprovalThreshold uint8
}

// Tally decides a proposal. It fires once yes+no reaches the quorum share of
// total voting power; a zero-vote tally is always undecided.
func Tally(in TallyInput) Outcome {
	totalVotes := in.YesVotes + in.NoVotes
	if totalVotes == 0 || totalVotes < in.YesVotes {
		return Undecided
	}
	if totalVotes < QuorumThreshold(in.TotalVotingPower, in.QuorumPercentage) {
		return Undecided
	}
	if ApprovalPercentage(in.YesVotes, totalVotes) >= uint64(in.ApprovalThreshold) {
		return Approve
	}
	return Reject
}

// QuorumThreshold returns floor(total * pct / 100) without intermediate
// overflow. pct is capped at 100.
func QuorumThreshold(total uint64, pct uint8) uint64 {
	return mulDiv(total, uint64(min(pct, 100)), 100)
}

// ApprovalPercentage returns floor(yes * 100 / totalVotes); totalVotes must
// be non-zero and not smaller than yes.
func ApprovalPercentage(yes, totalVotes uint64) uint64 {
	return mulDiv(yes, 100, totalVotes)
}

// mulDiv computes floor(a*b/d) with a 128-bit intermediate. The callers
// guarantee the high word stays below d.
func mulDiv(a, b, d uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, d)
	return q
}
