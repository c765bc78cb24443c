package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"treasury/internal/domain"
	"treasury/internal/host"
	"treasury/internal/middleware"
)

type App struct {
	Host   *host.Host
	Logger zerolog.Logger
}

func NewApp(h *host.Host, logger zerolog.Logger) *App {
	return &App{Host: h, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	var body errorBody
	body.Error.Code = errCode
	body.Error.Message = message
	a.json(w, code, body)
}

// fail maps a governance error onto an HTTP status.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("request failed")
		a.error(w, status, code, "internal error")
		return
	}
	a.error(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrAnonymousCaller):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNotDonorCreate),
		errors.Is(err, domain.ErrNotDonorVote):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrDonorNotFound),
		errors.Is(err, domain.ErrProposalNotFound),
		errors.Is(err, domain.ErrCharityNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrEmptyProposal),
		errors.Is(err, domain.ErrZeroAmount),
		errors.Is(err, domain.ErrExceedsTreasury),
		errors.Is(err, domain.ErrEmptyCharity),
		errors.Is(err, domain.ErrQuorumRange),
		errors.Is(err, domain.ErrThresholdRange):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrProposalNotActive),
		errors.Is(err, domain.ErrProposalExpired),
		errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrProposalNotApproved),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrAmountOverflow):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func chiParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func (a *App) idParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chiParam(r, "id"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid id")
		return 0, false
	}
	return id, true
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}
