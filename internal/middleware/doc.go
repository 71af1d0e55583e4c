// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

/*
Package middleware provides the HTTP middleware MediaFTP adds on top of chi's.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - VisitorLogger: first-visit geolocation logging and per-request activity lines
  - PrometheusMetrics: request count, latency and in-flight gauge by chi route pattern

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(visitors.Handler)
	r.Use(middleware.PrometheusMetrics)

VisitorLogger never delays a response: lookups for new addresses run in a
tracked goroutine. Call Wait during shutdown (and in tests) to let them
finish:

	visitors := middleware.NewVisitorLogger(seen, locator)
	defer visitors.Wait()
*/
package middleware
