package main

import (
	"context"
	"fmt"

	"github.com/midenpay/notewarden/internal/adapter"
	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/handler"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/server"
	"github.com/midenpay/notewarden/internal/service"
	"github.com/midenpay/notewarden/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("notewarden-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	repositories, err := store.NewRepositories(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}

	verifier := adapter.NewWalletVerifier(cfg.App, log)
	services := service.NewServices(repositories, verifier, *cfg, log)

	analytics := adapter.NewAnalyticsForwarder(cfg.Analytics, log)
	handlers, err := handler.NewHandlers(services, analytics, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
