// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package api serves the MediaFTP HTTP API with the chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/mediaftp/internal/middleware"
)

// Router wires a Handler to its routes and middleware.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	visitors      *middleware.VisitorLogger
}

// NewRouter returns a Router. A nil chiMiddleware uses the defaults; a nil
// visitors skips visitor logging.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware, visitors *middleware.VisitorLogger) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMiddleware,
		visitors:      visitors,
	}
}

// SetupChi builds the http.Handler serving every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP) // X-Forwarded-For / X-Real-IP into RemoteAddr
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.RateLimit())
	if router.visitors != nil {
		r.Use(router.visitors.Handler) // after the limiter: rejected requests start no lookup
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	// ========================
	// Frontend
	// ========================
	r.Get("/", router.handler.Index)

	// ========================
	// Folders & Bookmarks
	// ========================
	r.Get("/folders", router.handler.Folders)
	r.Get("/bookmarks", router.handler.Bookmarks)
	r.Route("/bookmark", func(r chi.Router) {
		r.Use(chimiddleware.AllowContentType("application/json"))
		r.Post("/add", router.handler.AddBookmark)
		r.Post("/remove", router.handler.RemoveBookmark)
	})

	// ========================
	// Media
	// ========================
	r.Get("/files", router.handler.Files)
	r.Get("/stream", router.handler.Stream)
	r.Head("/stream", router.handler.Stream)

	// ========================
	// Observability
	// ========================
	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
