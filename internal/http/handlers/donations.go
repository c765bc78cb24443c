package handlers

import (
	"net/http"

	"treasury/internal/domain"
	"treasury/internal/middleware"
)

type donationResponse struct {
	Message  string                `json:"message"`
	Donation domain.DonationRecord `json:"donation"`
}

// DonationsCreate credits the simulated fixed donation to the caller.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Host.Donate(middleware.CallerFromContext(r.Context()))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, donationResponse{
		Message:  printer(r).Sprintf(msgDonated, rec.Amount),
		Donation: rec,
	})
}

func (a *App) DonorGet(w http.ResponseWriter, r *http.Request) {
	donor, err := a.Host.Donor(domain.Principal(chiParam(r, "id")))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, donor)
}

func (a *App) TreasuryGet(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]uint64{"balance": a.Host.TreasuryBalance()})
}
