package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"relay/internal/http/handlers"
	"relay/internal/http/httpapi"
	"relay/internal/imagegen"
	"relay/internal/infra"
	"relay/internal/infra/geoip"
	"relay/internal/middleware"
	"relay/internal/stability"
)

func main() {
	_ = godotenv.Load()

	cfg := infra.LoadConfig()
	logger := infra.NewLogger(cfg.AppEnv)

	if cfg.StabilityAPIKey == "" {
		logger.Warn().Msg("STABILITY_API_KEY is not set; image requests will fail with a configuration error")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	client := stability.NewClient(stability.Options{
		APIKey:         cfg.StabilityAPIKey,
		BaseURL:        cfg.StabilityBaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.UpstreamTimeout,
	})
	fetcher := imagegen.NewFetcher(imagegen.FetcherOptions{Timeout: cfg.FetchTimeout})
	service := imagegen.NewService(imagegen.ServiceOptions{
		Upstream: client,
		Fetcher:  fetcher,
		Logger:   &logger,
	})

	app := handlers.NewApp(cfg, service, logger)
	router := httpapi.NewRouter(app, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
