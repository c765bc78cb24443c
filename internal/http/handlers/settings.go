package handlers

import (
	"net/http"

	"treasury/internal/domain"
	"treasury/internal/middleware"
)

type settingsResponse struct {
	Message  string                    `json:"message"`
	Settings domain.GovernanceSettings `json:"settings"`
}

func (a *App) SettingsGet(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Host.Settings())
}

func (a *App) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var upd domain.SettingsUpdate
	if !a.decode(w, r, &upd) {
		return
	}
	settings, err := a.Host.UpdateSettings(middleware.CallerFromContext(r.Context()), upd)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, settingsResponse{Message: printer(r).Sprintf(msgSettingsUpdated), Settings: settings})
}
