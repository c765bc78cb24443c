package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"treasury/internal/domain"
	"treasury/internal/governance"
	"treasury/internal/host"
	"treasury/internal/http/handlers"
	httpapi "treasury/internal/http/httpapi"
	"treasury/internal/infra"
	"treasury/internal/infra/geoip"
	"treasury/internal/middleware"
	"treasury/internal/snapshot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	store, closeStore, err := snapshot.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open snapshot store")
	}
	defer closeStore()

	admins := make([]domain.Principal, 0, len(cfg.SettingsAdmins))
	for _, a := range cfg.SettingsAdmins {
		admins = append(admins, domain.Principal(a))
	}
	engine := governance.NewEngine(governance.WithSettingsAuthorizer(governance.AllowPrincipals(admins...)))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := host.New(engine, store, logger,
		host.WithDonationAmount(cfg.DonationAmount),
		host.WithMetrics(host.NewMetrics(registry)),
	)
	if err := h.Resume(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to restore governance state")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()
	var lookup middleware.CountryLookup
	if resolver != nil {
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(h, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   lookup,
		Metrics:         registry,
	})
	server := infra.NewHTTPServer(cfg, router)

	checkpointCtx, stopCheckpoints := context.WithCancel(ctx)
	defer stopCheckpoints()
	go func() {
		_ = h.RunCheckpoints(checkpointCtx, cfg.SnapshotInterval)
	}()

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("snapshot_backend", cfg.SnapshotBackend).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	stopCheckpoints()
	if err := h.Suspend(shutdownCtx); err != nil {
		closeStore()
		logger.Fatal().Err(err).Msg("failed to save governance state")
	}
	logger.Info().Msg("server stopped")
}
