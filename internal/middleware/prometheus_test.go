// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/mediaftp/internal/metrics"
)

func TestPrometheusMetrics_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/metrics-test/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/{name}", "418")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/metrics-test/a", "/metrics-test/b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("%s: status = %d, want 418", path, rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests recorded under route pattern = %v, want 2", got)
	}
}

func TestPrometheusMetrics_ImplicitOK(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Post("/metrics-implicit", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
		w.WriteHeader(http.StatusInternalServerError) // superfluous, ignored
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/metrics-implicit", "200")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/metrics-implicit", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("200 requests recorded = %v, want 1", got)
	}
}

func TestPrometheusMetrics_WithoutRouter(t *testing.T) {
	t.Parallel()

	h := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodDelete, unmatchedRoute, "204")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/anything/123", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched requests recorded = %v, want 1", got)
	}
}
