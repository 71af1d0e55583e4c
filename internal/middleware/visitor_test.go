// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/mediaftp/internal/cache"
	"github.com/tomtom215/mediaftp/internal/geoip"
	"github.com/tomtom215/mediaftp/internal/logging"
	"github.com/tomtom215/mediaftp/internal/models"
)

// syncBuffer is written by lookup goroutines and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureLogs swaps the global logger for the duration of the test.
func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()

	buf := &syncBuffer{}
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(buf))
	t.Cleanup(func() { logging.SetLogger(prev) })
	return buf
}

func seen(v *VisitorLogger, ip string) bool {
	_, ok := v.Seen().FirstSeen(ip)
	return ok
}

type fakeProvider struct {
	err     error
	release chan struct{}
	calls   atomic.Int32
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Lookup(ctx context.Context, ip string) (*models.Geolocation, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	lat, lon := 45.76, 4.84
	return &models.Geolocation{IP: ip, City: "Lyon", Region: "Auvergne-Rhone-Alpes", Country: "France", Latitude: &lat, Longitude: &lon}, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set("User-Agent", "test-agent/1.0")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestVisitorLogger_NewVisitorLoggedOnce(t *testing.T) {
	logs := captureLogs(t)

	provider := &fakeProvider{}
	v := NewVisitorLogger(cache.NewSeenSet(10, time.Hour), geoip.NewLocator(provider, time.Second))
	h := v.Handler(okHandler())

	serve(h, "/", "203.0.113.5:40000")
	v.Wait()
	serve(h, "/", "203.0.113.5:40001")
	v.Wait()

	out := logs.String()
	if got := strings.Count(out, "New user connected"); got != 1 {
		t.Errorf("New user connected logged %d times, want 1\n%s", got, out)
	}
	if !strings.Contains(out, "Lyon, Auvergne-Rhone-Alpes, France (45.76, 4.84)") {
		t.Errorf("location missing from log:\n%s", out)
	}
	if !strings.Contains(out, "test-agent/1.0") {
		t.Errorf("user agent missing from log:\n%s", out)
	}
	if !strings.Contains(out, "Activity from 203.0.113.5: GET /") {
		t.Errorf("second visit not logged as activity:\n%s", out)
	}
	if !strings.Contains(out, `"first_seen"`) {
		t.Errorf("returning visitor logged without first_seen:\n%s", out)
	}
	if provider.calls.Load() != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls.Load())
	}
	if !seen(v, "203.0.113.5") {
		t.Error("address not remembered after successful lookup")
	}
}

func TestVisitorLogger_FailedLookupRetries(t *testing.T) {
	logs := captureLogs(t)

	provider := &fakeProvider{err: errors.New("connection reset")}
	v := NewVisitorLogger(cache.NewSeenSet(10, time.Hour), geoip.NewLocator(provider, time.Second))
	h := v.Handler(okHandler())

	serve(h, "/", "198.51.100.9:1234")
	v.Wait()

	if seen(v, "198.51.100.9") {
		t.Error("address remembered after failed lookup")
	}
	out := logs.String()
	if !strings.Contains(out, "Could not get location for 198.51.100.9") || !strings.Contains(out, "connection reset") {
		t.Errorf("failure not logged:\n%s", out)
	}

	serve(h, "/", "198.51.100.9:1235")
	v.Wait()
	if provider.calls.Load() != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls.Load())
	}
}

func TestVisitorLogger_OtherPathsLogActivity(t *testing.T) {
	logs := captureLogs(t)

	provider := &fakeProvider{}
	v := NewVisitorLogger(cache.NewSeenSet(10, time.Hour), geoip.NewLocator(provider, time.Second))
	h := v.Handler(okHandler())

	serve(h, "/folders?search=show", "203.0.113.7:5000")
	v.Wait()

	if !strings.Contains(logs.String(), "Activity from 203.0.113.7: GET /folders") {
		t.Errorf("activity not logged:\n%s", logs.String())
	}
	if strings.Contains(logs.String(), `"first_seen"`) {
		t.Errorf("unknown visitor logged with first_seen:\n%s", logs.String())
	}
	if provider.calls.Load() != 0 {
		t.Errorf("provider called for %q", "/folders")
	}
	if seen(v, "203.0.113.7") {
		t.Error("non-landing request marked the address as seen")
	}
}

func TestVisitorLogger_DoesNotDelayResponse(t *testing.T) {
	captureLogs(t)

	provider := &fakeProvider{release: make(chan struct{})}
	v := NewVisitorLogger(cache.NewSeenSet(10, time.Hour), geoip.NewLocator(provider, 5*time.Second))
	h := v.Handler(okHandler())

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- serve(h, "/", "203.0.113.8:1") }()

	select {
	case rec := <-done:
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("response waited on the geolocation lookup")
	}

	close(provider.release)
	v.Wait()
}

func TestVisitorLogger_NilLocator(t *testing.T) {
	logs := captureLogs(t)

	v := NewVisitorLogger(nil, nil)
	serve(v.Handler(okHandler()), "/", "203.0.113.10:1")
	v.Wait()

	out := logs.String()
	if !strings.Contains(out, "New user connected") {
		t.Errorf("new visitor not logged:\n%s", out)
	}
	if strings.Contains(out, "location") {
		t.Errorf("location logged without a locator:\n%s", out)
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"remote addr", "", "203.0.113.1:5555", "203.0.113.1"},
		{"ipv6 remote addr", "", "[2001:db8::2]:443", "2001:db8::2"},
		{"forwarded single", "198.51.100.4", "10.0.0.1:80", "198.51.100.4"},
		{"forwarded chain", " 198.51.100.4 , 10.0.0.2", "10.0.0.1:80", "198.51.100.4"},
		{"forwarded empty first", " , 10.0.0.2", "10.0.0.1:80", "10.0.0.1"},
		{"remote without port", "", "203.0.113.1", "203.0.113.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
