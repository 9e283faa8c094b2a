package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/trackplay/internal/auth"
	"github.com/desertthunder/trackplay/internal/server"
	"github.com/desertthunder/trackplay/internal/services"
	"github.com/desertthunder/trackplay/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	ctx := context.Background()

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var tracking services.TrackingService
	var artwork services.ArtworkService

	if config.Credentials.Trakt.ClientID != "" && config.Credentials.Trakt.ClientSecret != "" {
		if svc, err := services.NewTraktService(config.Credentials.Trakt.Map()); err == nil {
			tracking = svc
		} else {
			logger.Warnf("failed to create trakt service: %v", err)
		}
	}

	if config.Credentials.TMDB.APIKey != "" {
		if svc, err := services.NewTMDBService(config.Credentials.TMDB.APIKey, config.Credentials.TMDB.ImageBaseURL); err == nil {
			artwork = svc
		} else {
			logger.Warnf("failed to create tmdb service: %v", err)
		}
	}

	store := auth.NewFileStore(config.Storage.Dir(), logger)

	var session *auth.SessionManager
	var flow *auth.Flow
	if trakt, ok := tracking.(*services.TraktService); ok {
		session = auth.NewSessionManager(store, logger, trakt)
		session.Init(ctx)

		consent := server.NewBrowserConsent(config.Server.Host, config.Server.Port, 0, logger)
		flow = auth.NewFlow(trakt, consent, logger)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Tracking: tracking,
		Artwork:  artwork,
		Store:    store,
		Session:  session,
		Flow:     flow,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "trackplay",
		Usage:    "Track watch history and discover recommendations via Trakt",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
