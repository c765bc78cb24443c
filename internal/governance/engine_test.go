package governance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasury/internal/domain"
)

const oneICP uint64 = 100_000_000

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func callAt(caller domain.Principal, at time.Time) Call {
	return Call{Caller: caller, Now: at}
}

func proposalFor(amount uint64) ProposalRequest {
	return ProposalRequest{
		Title:       "School roof",
		Description: "Repair the roof before the rains",
		Recipient:   "recipient-1",
		Amount:      amount,
	}
}

func TestDonateCreditsDonorAndTreasury(t *testing.T) {
	e := NewEngine()

	rec, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)
	assert.Equal(t, oneICP, rec.Amount)
	assert.Equal(t, t0, rec.Timestamp)

	d, err := e.Donor("alice")
	require.NoError(t, err)
	assert.Equal(t, oneICP, d.VotingPower)
	assert.Equal(t, oneICP, d.TotalDonations)
	assert.Len(t, d.DonationHistory, 1)
	assert.Equal(t, oneICP, e.TreasuryBalance())

	_, err = e.Donate(callAt("alice", t0.Add(time.Minute)), oneICP)
	require.NoError(t, err)
	d, _ = e.Donor("alice")
	assert.Equal(t, 2*oneICP, d.VotingPower)
	assert.Len(t, d.DonationHistory, 2)
}

func TestDonorReturnsCopy(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)

	d, _ := e.Donor("alice")
	d.VotingPower = 1
	d.DonationHistory[0].Amount = 1

	again, _ := e.Donor("alice")
	assert.Equal(t, oneICP, again.VotingPower)
	assert.Equal(t, oneICP, again.DonationHistory[0].Amount)
}

func TestAnonymousCallerIsRejectedWithoutMutation(t *testing.T) {
	e := NewEngine()
	for _, caller := range []domain.Principal{"", domain.AnonymousPrincipal, "  "} {
		_, err := e.Donate(callAt(caller, t0), oneICP)
		assert.ErrorIs(t, err, domain.ErrAnonymousCaller)
		_, err = e.CreateProposal(callAt(caller, t0), proposalFor(1))
		assert.ErrorIs(t, err, domain.ErrAnonymousCaller)
		_, err = e.Vote(callAt(caller, t0), 0, true)
		assert.ErrorIs(t, err, domain.ErrAnonymousCaller)
		_, err = e.Execute(callAt(caller, t0), 0)
		assert.ErrorIs(t, err, domain.ErrAnonymousCaller)
		_, err = e.RegisterCharity(callAt(caller, t0), "n", "d")
		assert.ErrorIs(t, err, domain.ErrAnonymousCaller)
		_, err = e.UpdateSettings(callAt(caller, t0), domain.SettingsUpdate{})
		assert.ErrorIs(t, err, domain.ErrAnonymousCaller)
	}
	assert.Zero(t, e.TreasuryBalance())
	assert.Empty(t, e.ListProposals())
	assert.Empty(t, e.ListCharityProjects())
}

func TestDonateRejectsOverflow(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), ^uint64(0))
	require.NoError(t, err)

	_, err = e.Donate(callAt("bob", t0), 1)
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
	_, err = e.Donor("bob")
	assert.ErrorIs(t, err, domain.ErrDonorNotFound)
	assert.Equal(t, ^uint64(0), e.TreasuryBalance())
}

func TestCreateProposalValidation(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)

	tests := []struct {
		name   string
		caller domain.Principal
		req    ProposalRequest
		want   error
	}{
		{"empty title", "alice", ProposalRequest{Description: "d", Amount: 1}, domain.ErrEmptyProposal},
		{"empty description", "alice", ProposalRequest{Title: "t", Amount: 1}, domain.ErrEmptyProposal},
		{"blank title on non donor", "bob", ProposalRequest{Title: " ", Description: "d", Amount: 1}, domain.ErrNotDonorCreate},
		{"zero amount", "alice", ProposalRequest{Title: "t", Description: "d"}, domain.ErrZeroAmount},
		{"non donor", "bob", proposalFor(1), domain.ErrNotDonorCreate},
		{"exceeds treasury", "alice", proposalFor(oneICP + 1), domain.ErrExceedsTreasury},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.CreateProposal(callAt(tc.caller, t0), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, e.ListProposals())

	id, err := e.CreateProposal(callAt("alice", t0), ProposalRequest{Title: " ", Description: "\t", Recipient: "r", Amount: 1})
	require.NoError(t, err)
	p, err := e.Proposal(id)
	require.NoError(t, err)
	assert.Equal(t, " ", p.Title)
}

func TestCreateProposalAssignsSequentialIDsAndFloorsDuration(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)

	short := proposalFor(10)
	short.DurationSeconds = 60
	id0, err := e.CreateProposal(callAt("alice", t0), short)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id0)

	long := proposalFor(10)
	long.DurationSeconds = 7 * 86400
	id1, err := e.CreateProposal(callAt("alice", t0), long)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id1)

	p0, err := e.Proposal(id0)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(3*24*time.Hour), p0.ExpiresAt)
	assert.Equal(t, domain.ProposalStatusActive, p0.Status)
	assert.Zero(t, p0.YesVotes)
	assert.Zero(t, p0.NoVotes)
	assert.Nil(t, p0.ExecutedAt)

	p1, _ := e.Proposal(id1)
	assert.Equal(t, t0.Add(7*24*time.Hour), p1.ExpiresAt)
}

func TestScenarioApproveAndExecute(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)
	assert.Equal(t, oneICP, e.TreasuryBalance())

	id, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)

	status, err := e.Vote(callAt("alice", t0.Add(time.Hour)), id, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusApproved, status)

	p, _ := e.Proposal(id)
	assert.Equal(t, oneICP, p.YesVotes)
	require.Len(t, p.Votes, 1)
	assert.Equal(t, oneICP, p.Votes[0].VotingPower)

	executedAt := t0.Add(2 * time.Hour)
	executed, err := e.Execute(callAt("bob", executedAt), id)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusExecuted, executed.Status)
	require.NotNil(t, executed.ExecutedAt)
	assert.Equal(t, executedAt, *executed.ExecutedAt)
	assert.Zero(t, e.TreasuryBalance())

	_, err = e.Execute(callAt("alice", executedAt), id)
	assert.ErrorIs(t, err, domain.ErrProposalNotApproved)
	assert.Zero(t, e.TreasuryBalance())
}

func TestVoteByNonDonorLeavesStateUnchanged(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)
	id, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)

	_, err = e.Vote(callAt("bob", t0), id, true)
	assert.ErrorIs(t, err, domain.ErrNotDonorVote)

	p, _ := e.Proposal(id)
	assert.Empty(t, p.Votes)
	assert.Equal(t, domain.ProposalStatusActive, p.Status)
	_, err = e.Donor("bob")
	assert.ErrorIs(t, err, domain.ErrDonorNotFound)
}

func TestVoteAfterExpiryForcesRejection(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)
	id, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)

	p, _ := e.Proposal(id)
	status, err := e.Vote(callAt("alice", p.ExpiresAt.Add(time.Second)), id, true)
	assert.ErrorIs(t, err, domain.ErrProposalExpired)
	assert.Equal(t, domain.ProposalStatusRejected, status)

	p, _ = e.Proposal(id)
	assert.Equal(t, domain.ProposalStatusRejected, p.Status)
	assert.Empty(t, p.Votes)

	_, err = e.Vote(callAt("alice", p.ExpiresAt.Add(time.Second)), id, true)
	assert.ErrorIs(t, err, domain.ErrProposalNotActive)
}

func TestVoteExactlyAtExpiryIsAccepted(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)
	id, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)

	p, _ := e.Proposal(id)
	status, err := e.Vote(callAt("alice", p.ExpiresAt), id, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusApproved, status)
}

func TestVoteRejectsDuplicatesAndUnknownProposals(t *testing.T) {
	e := NewEngine()
	for _, who := range []domain.Principal{"alice", "bob", "carol", "dave", "erin"} {
		_, err := e.Donate(callAt(who, t0), oneICP)
		require.NoError(t, err)
	}
	id, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)

	// 1 of 5 voting power is below the 25% quorum.
	status, err := e.Vote(callAt("alice", t0), id, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusActive, status)

	_, err = e.Vote(callAt("alice", t0), id, false)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	_, err = e.Vote(callAt("alice", t0), 42, true)
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)

	p, _ := e.Proposal(id)
	assert.Len(t, p.Votes, 1)
	assert.Equal(t, oneICP, p.YesVotes)
	assert.Zero(t, p.NoVotes)
}

func TestVoteQuorumReachedThenRejected(t *testing.T) {
	e := NewEngine()
	for _, who := range []domain.Principal{"alice", "bob", "carol", "dave"} {
		_, err := e.Donate(callAt(who, t0), oneICP)
		require.NoError(t, err)
	}
	id, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)

	// One quarter of the voting power meets the 25% quorum; 0% yes fails 51%.
	status, err := e.Vote(callAt("bob", t0), id, false)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusRejected, status)

	_, err = e.Vote(callAt("carol", t0), id, true)
	assert.ErrorIs(t, err, domain.ErrProposalNotActive)
}

func TestLateDonationRaisesQuorumForNextVote(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)
	_, err = e.Donate(callAt("bob", t0), oneICP)
	require.NoError(t, err)
	_, err = e.UpdateSettings(callAt("alice", t0), domain.SettingsUpdate{QuorumPercentage: ptr[uint8](60)})
	require.NoError(t, err)

	id, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)

	// 1 of 2 is 50%, below 60% quorum.
	status, err := e.Vote(callAt("alice", t0), id, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusActive, status)

	_, err = e.Donate(callAt("carol", t0), 10*oneICP)
	require.NoError(t, err)

	// 2 of 12 is still below quorum after the late donation.
	status, err = e.Vote(callAt("bob", t0), id, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusActive, status)
}

func TestExecuteWithDrainedTreasuryForcesRejection(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)

	first, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)
	second, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP/2))
	require.NoError(t, err)

	_, err = e.Vote(callAt("alice", t0), first, true)
	require.NoError(t, err)
	_, err = e.Vote(callAt("alice", t0), second, true)
	require.NoError(t, err)

	_, err = e.Execute(callAt("alice", t0), first)
	require.NoError(t, err)

	p, err := e.Execute(callAt("alice", t0), second)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, domain.ProposalStatusRejected, p.Status)

	stored, _ := e.Proposal(second)
	assert.Equal(t, domain.ProposalStatusRejected, stored.Status)
	assert.Nil(t, stored.ExecutedAt)
	assert.Zero(t, e.TreasuryBalance())
}

func TestExecuteRequiresApproval(t *testing.T) {
	e := NewEngine()
	_, err := e.Execute(callAt("alice", t0), 0)
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)

	_, err = e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)
	id, err := e.CreateProposal(callAt("alice", t0), proposalFor(oneICP))
	require.NoError(t, err)

	_, err = e.Execute(callAt("alice", t0), id)
	assert.ErrorIs(t, err, domain.ErrProposalNotApproved)
	assert.Equal(t, oneICP, e.TreasuryBalance())
}

func TestListActiveProposals(t *testing.T) {
	e := NewEngine()
	_, err := e.Donate(callAt("alice", t0), oneICP)
	require.NoError(t, err)
	_, err = e.Donate(callAt("bob", t0), 3*oneICP)
	require.NoError(t, err)

	a, _ := e.CreateProposal(callAt("alice", t0), proposalFor(1))
	b, _ := e.CreateProposal(callAt("alice", t0), proposalFor(2))
	c, _ := e.CreateProposal(callAt("alice", t0), proposalFor(3))

	_, err = e.Vote(callAt("bob", t0), b, true)
	require.NoError(t, err)

	all := e.ListProposals()
	require.Len(t, all, 3)
	for i, p := range all {
		assert.Equal(t, uint64(i), p.ID)
	}

	active := e.ListActiveProposals()
	require.Len(t, active, 2)
	assert.Equal(t, a, active[0].ID)
	assert.Equal(t, c, active[1].ID)
}

func TestRegisterCharity(t *testing.T) {
	e := NewEngine()
	for _, tc := range []struct{ name, description string }{
		{"", "desc"},
		{"name", ""},
	} {
		_, err := e.RegisterCharity(callAt("org", t0), tc.name, tc.description)
		assert.ErrorIs(t, err, domain.ErrEmptyCharity)
	}

	id, err := e.RegisterCharity(callAt("org", t0), "Clean Water", "Wells for villages")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	id, err = e.RegisterCharity(callAt("org2", t0), "Books", "Libraries")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	c, err := e.CharityProject(0)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal("org"), c.Owner)
	assert.Equal(t, t0, c.CreatedAt)
	assert.Zero(t, c.TotalReceived)

	_, err = e.CharityProject(2)
	assert.ErrorIs(t, err, domain.ErrCharityNotFound)
	assert.Len(t, e.ListCharityProjects(), 2)
}

func TestRegisterCharityAcceptsWhitespaceText(t *testing.T) {
	e := NewEngine()
	id, err := e.RegisterCharity(callAt("org", t0), " ", "\n")
	require.NoError(t, err)
	c, err := e.CharityProject(id)
	require.NoError(t, err)
	assert.Equal(t, " ", c.Name)
}

func TestUpdateSettings(t *testing.T) {
	e := NewEngine()
	before := e.Settings()
	assert.Equal(t, domain.DefaultGovernanceSettings(), before)

	_, err := e.UpdateSettings(callAt("anyone", t0), domain.SettingsUpdate{QuorumPercentage: ptr[uint8](150)})
	assert.ErrorIs(t, err, domain.ErrQuorumRange)
	assert.Equal(t, before, e.Settings())

	got, err := e.UpdateSettings(callAt("anyone", t0), domain.SettingsUpdate{
		MinProposalDuration: ptr[uint64](60),
		QuorumPercentage:    ptr[uint8](100),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(60), got.MinProposalDuration)
	assert.Equal(t, uint8(100), got.QuorumPercentage)
	assert.Equal(t, domain.DefaultApprovalThreshold, got.ApprovalThreshold)
}

func TestUpdateSettingsKeepsFieldsAppliedBeforeRejection(t *testing.T) {
	tests := []struct {
		name  string
		upd   domain.SettingsUpdate
		want  error
		after domain.GovernanceSettings
	}{
		{
			name: "duration kept when quorum out of range",
			upd:  domain.SettingsUpdate{MinProposalDuration: ptr[uint64](60), QuorumPercentage: ptr[uint8](150)},
			want: domain.ErrQuorumRange,
			after: domain.GovernanceSettings{
				MinProposalDuration: 60,
				QuorumPercentage:    domain.DefaultQuorumPercentage,
				ApprovalThreshold:   domain.DefaultApprovalThreshold,
			},
		},
		{
			name: "duration and quorum kept when threshold out of range",
			upd: domain.SettingsUpdate{
				MinProposalDuration: ptr[uint64](120),
				QuorumPercentage:    ptr[uint8](40),
				ApprovalThreshold:   ptr[uint8](101),
			},
			want: domain.ErrThresholdRange,
			after: domain.GovernanceSettings{
				MinProposalDuration: 120,
				QuorumPercentage:    40,
				ApprovalThreshold:   domain.DefaultApprovalThreshold,
			},
		},
		{
			name:  "quorum error stops before threshold",
			upd:   domain.SettingsUpdate{QuorumPercentage: ptr[uint8](200), ApprovalThreshold: ptr[uint8](70)},
			want:  domain.ErrQuorumRange,
			after: domain.DefaultGovernanceSettings(),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine()
			got, err := e.UpdateSettings(callAt("anyone", t0), tc.upd)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.after, got)
			assert.Equal(t, tc.after, e.Settings())
		})
	}
}

func TestUpdateSettingsWithAuthorizer(t *testing.T) {
	e := NewEngine(WithSettingsAuthorizer(AllowPrincipals("admin")))

	_, err := e.UpdateSettings(callAt("mallory", t0), domain.SettingsUpdate{QuorumPercentage: ptr[uint8](1)})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, domain.DefaultQuorumPercentage, e.Settings().QuorumPercentage)

	_, err = e.UpdateSettings(callAt("admin", t0), domain.SettingsUpdate{QuorumPercentage: ptr[uint8](1)})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), e.Settings().QuorumPercentage)
}

func ptr[T any](v T) *T { return &v }
