package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hydrosim.watervault.org/internal/app"
	"hydrosim.watervault.org/internal/appconf"
	"hydrosim.watervault.org/internal/logging"
	"hydrosim.watervault.org/internal/restapi"
	"hydrosim.watervault.org/internal/sim"
)

func main() {
	var (
		port         int
		envFlag      string
		apiKeysFlag  string
		dataset      string
		dbPath       string
		rateLimit    int
		verbose      bool
		watchDataset bool
	)

	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.StringVar(&dataset, "dataset", "testdata/cascade.yaml", "Cascade dataset: local YAML file path or HTTP(S) URL")
	flag.StringVar(&dbPath, "db-path", "hydrosim.db", "SQLite database path for persisted runs")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Requests per second per API key (negative disables limiting)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&watchDataset, "watch-dataset", false, "Hot-reload local dataset files on change")
	flag.Parse()

	env := appconf.EnvFlagToEnvironment(envFlag)

	var apiKeys []string
	if apiKeysFlag != "" {
		apiKeys = strings.Split(apiKeysFlag, ",")
		for i := range apiKeys {
			apiKeys[i] = strings.TrimSpace(apiKeys[i])
		}
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)

	simConfig := sim.Config{
		DatasetSource: dataset,
		DataPath:      dbPath,
		Env:           env,
		Verbose:       verbose,
		WatchDataset:  watchDataset,
	}

	simManager, err := sim.InitManager(simConfig, logger)
	if err != nil {
		logger.Error("failed to initialize simulation manager", "error", err)
		os.Exit(1)
	}
	defer simManager.Shutdown()

	application := &app.Application{
		Config: appconf.Config{
			Port:      port,
			Env:       env,
			ApiKeys:   apiKeys,
			RateLimit: rateLimit,
			Verbose:   verbose,
		},
		SimConfig:  simConfig,
		Logger:     logger,
		SimManager: simManager,
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", env.String(), "dataset", dataset)

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
