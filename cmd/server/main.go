// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/mediaftp/docs" // Swagger documentation

	"github.com/tomtom215/mediaftp/internal/config"
	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/supervisor"
	"github.com/tomtom215/mediaftp/internal/supervisor/services"
)

func main() {
	logging.Info().Msg("Starting MediaFTP...")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	logging.Info().Msg("Configuration loaded successfully")

	a, err := newApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(a.server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewJanitorService(a.seen, cfg.Visitors.CleanupInterval))
	logging.Info().Str("addr", a.server.Addr).Msg("HTTP server added to supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Supervisor tree stopped unexpectedly")
	}

	// Let in-flight geolocation lookups finish logging.
	a.visitors.Wait()

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		logging.Warn().Err(err).Msg("Could not get unstopped service report")
	} else if len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop gracefully")
		}
	}

	logging.Info().Msg("Shutdown complete")
}
