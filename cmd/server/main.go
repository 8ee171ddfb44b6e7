package main

import (
	"context"
	"fmt"

	"github.com/akarimullin/tasktrack/internal/adapter"
	"github.com/akarimullin/tasktrack/internal/config"
	httphandler "github.com/akarimullin/tasktrack/internal/handler/http"
	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/internal/server"
	"github.com/akarimullin/tasktrack/internal/service"
	"github.com/akarimullin/tasktrack/internal/store"
	"github.com/akarimullin/tasktrack/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("tasktrack-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	emailSender := adapter.NewResendEmailSender(cfg.Email, log)
	emailWorkers := workers.NewWorkers(emailSender, cfg.Email, log)
	emailWorkers.Run()

	services := service.NewServices(storages, cfg, emailWorkers.Email, log)
	handler := httphandler.NewHandler(services, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log,
		func() { emailWorkers.Stop() },
		func() {
			if err := storages.Close(); err != nil {
				log.Err(err).Msg("error closing storages")
			}
		},
	)
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
