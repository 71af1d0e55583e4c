// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/tomtom215/mediaftp/internal/cache"
	"github.com/tomtom215/mediaftp/internal/geoip"
	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/metrics"
)

// landingPath is the only path that triggers a geolocation lookup.
const landingPath = "/"

// VisitorLogger logs where new visitors connect from and what every
// visitor requests.
//
// An address is remembered only after a successful lookup; a failed lookup
// forgets it again so the next visit retries.
type VisitorLogger struct {
	seen    *cache.SeenSet
	locator *geoip.Locator
	wg      sync.WaitGroup
}

// NewVisitorLogger returns a VisitorLogger. A nil locator logs new visitors
// without a location.
func NewVisitorLogger(seen *cache.SeenSet, locator *geoip.Locator) *VisitorLogger {
	if seen == nil {
		seen = cache.NewSeenSet(cache.DefaultCapacity, cache.DefaultTTL)
	}
	return &VisitorLogger{seen: seen, locator: locator}
}

// Seen returns the set of remembered addresses.
func (v *VisitorLogger) Seen() *cache.SeenSet {
	return v.seen
}

// Handler is the middleware. It never waits for a lookup.
func (v *VisitorLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)

		if r.URL.Path == landingPath && ip != "" && !v.seen.MarkSeen(ip) {
			metrics.VisitorsNew.Inc()
			metrics.VisitorsSeen.Set(float64(v.seen.Len()))
			v.locate(r, ip)
		} else {
			event := logging.Ctx(r.Context()).Info().
				Str("client_ip", ip).
				Str("method", r.Method).
				Str("path", r.URL.Path)
			if first, ok := v.seen.FirstSeen(ip); ok {
				event = event.Time("first_seen", first)
			}
			event.Msgf("Activity from %s: %s %s", ip, r.Method, r.URL.Path)
		}

		next.ServeHTTP(w, r)
	})
}

// Wait blocks until every in-flight lookup has logged its result.
func (v *VisitorLogger) Wait() {
	v.wg.Wait()
}

func (v *VisitorLogger) locate(r *http.Request, ip string) {
	userAgent := r.UserAgent()

	// Keeps the request and correlation IDs but outlives the response.
	ctx := context.WithoutCancel(r.Context())

	if v.locator == nil {
		logging.Ctx(ctx).Info().
			Str("client_ip", ip).
			Str("user_agent", userAgent).
			Msg("New user connected")
		return
	}

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()

		res := v.locator.Locate(ctx, ip)
		logger := logging.Ctx(ctx)

		if res.Status == geoip.StatusFailed {
			v.seen.Forget(ip)
			metrics.VisitorsSeen.Set(float64(v.seen.Len()))
			logger.Error().
				Err(res.Err).
				Str("client_ip", ip).
				Msgf("Could not get location for %s", ip)
			return
		}

		logger.Info().
			Str("client_ip", ip).
			Str("lookup", string(res.Status)).
			Str("location", geoip.FormatLocation(res.Geo)).
			Str("user_agent", userAgent).
			Dur("lookup_duration", res.Duration).
			Msg("New user connected")
	}()
}

// ClientIP returns the first X-Forwarded-For element, else the host part
// of RemoteAddr. The header is trusted as-is.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
