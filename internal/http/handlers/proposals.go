package handlers

import (
	"net/http"
	"strings"

	"treasury/internal/domain"
	"treasury/internal/governance"
	"treasury/internal/middleware"
)

type proposalRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Recipient       string `json:"recipient"`
	Amount          uint64 `json:"amount"`
	DurationSeconds uint64 `json:"duration_seconds"`
}

type voteRequest struct {
	Approve *bool `json:"approve"`
}

type voteResponse struct {
	Message string                `json:"message"`
	Status  domain.ProposalStatus `json:"status"`
}

type executeResponse struct {
	Message  string                  `json:"message"`
	Proposal *domain.FundingProposal `json:"proposal"`
}

func (a *App) ProposalsCreate(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	if caller.IsAnonymous() {
		a.fail(w, r, domain.ErrAnonymousCaller)
		return
	}
	var req proposalRequest
	if !a.decode(w, r, &req) {
		return
	}
	recipient := domain.Principal(strings.TrimSpace(req.Recipient))
	if recipient.IsAnonymous() {
		a.error(w, http.StatusBadRequest, "bad_request", "recipient is required")
		return
	}
	id, err := a.Host.CreateProposal(caller, governance.ProposalRequest{
		Title:           req.Title,
		Description:     req.Description,
		Recipient:       recipient,
		Amount:          req.Amount,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (a *App) ProposalsList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, listResponse[domain.FundingProposal]{Items: a.Host.ListProposals()})
}

func (a *App) ProposalsActive(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, listResponse[domain.FundingProposal]{Items: a.Host.ListActiveProposals()})
}

func (a *App) ProposalGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	p, err := a.Host.Proposal(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, p)
}

// ProposalVote records the caller's vote. An expired proposal is rejected
// as a side effect and the request still fails.
func (a *App) ProposalVote(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	var req voteRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Approve == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "approve is required")
		return
	}
	status, err := a.Host.Vote(middleware.CallerFromContext(r.Context()), id, *req.Approve)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, voteResponse{Message: printer(r).Sprintf(msgVoteRecorded), Status: status})
}

func (a *App) ProposalExecute(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	p, err := a.Host.Execute(middleware.CallerFromContext(r.Context()), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, executeResponse{Message: printer(r).Sprintf(msgExecuted), Proposal: p})
}
