package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/atomview/atomview/config"
	"github.com/atomview/atomview/dataset"
	"github.com/atomview/atomview/errors"
	"github.com/atomview/atomview/logger"
	"github.com/atomview/atomview/server"
)

// ServeCmd starts the HTTP sampling server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the HTTP sampling server",
	Long:    `Serve orbital density point clouds over HTTP: GET /samples for a single cloud, /ws for superposition animation streams, /healthz for liveness.`,
	RunE:    runServe,
}

var (
	serveListen  string
	serveDataDir string
	serveNoFetch bool
)

func init() {
	ServeCmd.Flags().StringVar(&serveListen, "listen", "", "Bind address (overrides config)")
	ServeCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "Dataset directory (overrides config)")
	ServeCmd.Flags().BoolVar(&serveNoFetch, "no-fetch", false, "Never download missing datasets")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}
	if serveDataDir != "" {
		cfg.Data.Dir = serveDataDir
	}
	if serveNoFetch {
		cfg.Data.Fetch = false
	}

	log := logger.Logger
	var fetcher *dataset.Fetcher
	if cfg.Data.Fetch {
		fetcher = dataset.NewFetcher(log.Named("fetch"))
	}
	store := dataset.NewStore(cfg.Data.Dir, fetcher, log.Named("dataset"))

	if cfg.Data.Watch {
		watcher, err := dataset.NewWatcher(store, log.Named("watch"))
		if err != nil {
			log.Warnw("Dataset watching disabled", "error", err)
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	srv := server.New(cfg, store, log.Named("server"))

	// Serve until interrupted, then drain.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Infow("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		logger.Sync()
		return nil
	}
}
