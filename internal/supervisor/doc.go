// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

/*
Package supervisor runs MediaFTP's long-lived services under a suture v4
supervisor tree.

Tree layout:

	mediaftp (root)
	├── api-layer
	│   └── http-server
	└── maintenance-layer
	    └── visitor-janitor

A service that returns an error is restarted with backoff; a crash in the
maintenance layer never takes the HTTP server down with it. Supervisor
events are logged through sutureslog, which takes a *slog.Logger; pass
logging.NewSlogLogger() to route them into zerolog.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	tree.AddMaintenanceService(services.NewJanitorService(seen, 10*time.Minute))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
