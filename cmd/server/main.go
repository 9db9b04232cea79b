package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/handler"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/markdown"
	"github.com/MKhiriev/go-notes/internal/realtime"
	"github.com/MKhiriev/go-notes/internal/server"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const eventBuffer = 16

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	ctx := context.Background()
	log := logger.NewLogger("go-notes-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if buildVersion != "" {
		cfg.App.Version = buildInfo.Version()
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	rendererOpts := []markdown.Option{}
	if cfg.Storage.Cache.Path != "" {
		cache, err := markdown.OpenCache(cfg.Storage.Cache.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("error opening render cache")
		}
		defer cache.Close()
		rendererOpts = append(rendererOpts, markdown.WithCache(cache))
	}

	hub := realtime.NewHub(eventBuffer, log)
	defer hub.Close()

	services, err := service.NewServices(storages, hub, markdown.NewRenderer(rendererOpts...), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, realtime.NewStreamer(hub, services.ShareService), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
