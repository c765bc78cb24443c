package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"treasury/internal/http/handlers"
	mw "treasury/internal/middleware"
)

// Options carries the router's middleware settings.
type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	RateLimitPerMin int
	DefaultLocale   string
	CountryLookup   mw.CountryLookup
	Metrics         prometheus.Gatherer
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		mw.RequestID,
		mw.CORS(opts.AllowedOrigins),
		mw.I18N(opts.DefaultLocale, opts.CountryLookup),
		mw.Identity(opts.JWTSecret),
		mw.Logger(app.Logger),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(mw.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", handlers.MetricsHandler(opts.Metrics))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Post("/donations", app.DonationsCreate)
		r.Get("/donors/{id}", app.DonorGet)
		r.Get("/treasury", app.TreasuryGet)

		r.Route("/proposals", func(r chi.Router) {
			r.Post("/", app.ProposalsCreate)
			r.Get("/", app.ProposalsList)
			r.Get("/active", app.ProposalsActive)
			r.Get("/{id}", app.ProposalGet)
			r.Post("/{id}/votes", app.ProposalVote)
			r.Post("/{id}/execute", app.ProposalExecute)
		})

		r.Route("/charities", func(r chi.Router) {
			r.Post("/", app.CharitiesCreate)
			r.Get("/", app.CharitiesList)
			r.Get("/{id}", app.CharityGet)
		})

		r.Get("/governance/settings", app.SettingsGet)
		r.Patch("/governance/settings", app.SettingsUpdate)
	})

	return r
}
