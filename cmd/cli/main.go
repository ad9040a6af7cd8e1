package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/tripcal/internal/buildinfo"
	"github.com/dmitrijs2005/tripcal/internal/client/cli"
	"github.com/dmitrijs2005/tripcal/internal/client/client"
	"github.com/dmitrijs2005/tripcal/internal/client/config"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/scheduler"
	"github.com/dmitrijs2005/tripcal/internal/client/services"
	"github.com/dmitrijs2005/tripcal/internal/client/session"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
	"github.com/dmitrijs2005/tripcal/internal/client/storage"
	"github.com/dmitrijs2005/tripcal/internal/client/tokenstore"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)

	repos, err := storage.OpenDataDir(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer repos.Close()

	tokens := tokenstore.Select(ctx,
		tokenstore.NewSecureStore(repos.DB, filepath.Join(cfg.DataDir, tokenstore.DeviceKeyFile)),
		tokenstore.NewPlainStore(repos.Metadata),
		logger,
	)

	api, err := client.NewHTTPClient(cfg.ServerURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger.With("component", "api")),
	)
	if err != nil {
		return err
	}

	store := state.New()
	nav := router.New(router.Login)
	nav.OnChange(func(loc router.Location) {
		logger.Debug(ctx, "navigate", "route", string(loc.Route))
	})

	sess := session.NewManager(api, tokens, repos.Metadata, store, nav, logger.With("component", "session"),
		session.WithInactivityTimeout(cfg.InactivityTimeout),
	)
	gate := session.NewGate(tokens, store, nav, logger.With("component", "gate"))

	auth := services.NewAuthService(api, sess, store, nav, cfg.Language, logger)
	events := services.NewEventService(api, sess, store, nav, logger)

	refresher, err := scheduler.New(cfg.RefreshSchedule, events, func() bool {
		return sess.Status() == session.StatusAuthenticated
	}, logger.With("component", "scheduler"))
	if err != nil {
		return err
	}
	refresher.Start(ctx)
	defer refresher.Stop()

	app := cli.NewApp(cli.Deps{
		Auth:      auth,
		Events:    events,
		Session:   sess,
		Gate:      gate,
		Store:     store,
		Nav:       nav,
		Logger:    logger,
		In:        os.Stdin,
		Out:       os.Stdout,
		WeekStart: cfg.WeekStart,
	})
	return app.Run(ctx)
}
