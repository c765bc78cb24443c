package handlers

import (
	"net/http"

	"treasury/internal/domain"
	"treasury/internal/middleware"
)

type charityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *App) CharitiesCreate(w http.ResponseWriter, r *http.Request) {
	var req charityRequest
	if !a.decode(w, r, &req) {
		return
	}
	id, err := a.Host.RegisterCharity(middleware.CallerFromContext(r.Context()), req.Name, req.Description)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (a *App) CharitiesList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, listResponse[domain.CharityProject]{Items: a.Host.ListCharityProjects()})
}

func (a *App) CharityGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	c, err := a.Host.CharityProject(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, c)
}
