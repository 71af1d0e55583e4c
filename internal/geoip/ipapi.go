// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package geoip

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/mediaftp/internal/models"
)

// DefaultIPAPIURL is the free ip-api.com JSON endpoint.
const DefaultIPAPIURL = "http://ip-api.com/json"

// ipAPIFields limits the response to what the visitor log shows.
const ipAPIFields = "status,message,country,regionName,city,lat,lon,query"

// IPAPIConfig configures an IPAPIProvider.
type IPAPIConfig struct {
	// BaseURL defaults to DefaultIPAPIURL.
	BaseURL string

	// RequestsPerMinute defaults to 45, the ip-api.com free tier limit.
	RequestsPerMinute int

	// Timeout is the HTTP client timeout. Default: 10s
	Timeout time.Duration

	// Client overrides the HTTP client; Timeout is then ignored.
	Client *http.Client
}

// IPAPIProvider queries ip-api.com.
type IPAPIProvider struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

type ipAPIResponse struct {
	Status     string   `json:"status"`  // "success" or "fail"
	Message    string   `json:"message"` // set when status is "fail"
	Country    string   `json:"country"`
	RegionName string   `json:"regionName"`
	City       string   `json:"city"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	Query      string   `json:"query"`
}

// NewIPAPIProvider returns a rate-limited ip-api.com provider.
func NewIPAPIProvider(cfg IPAPIConfig) *IPAPIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultIPAPIURL
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 45
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &IPAPIProvider{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Name returns "ip-api.com".
func (p *IPAPIProvider) Name() string {
	return "ip-api.com"
}

// Lookup waits for a rate limit token, bounded by ctx, then queries the
// service.
func (p *IPAPIProvider) Lookup(ctx context.Context, ip string) (*models.Geolocation, error) {
	if net.ParseIP(ip) == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}
	if err := p.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	result, err := p.query(ctx, ip)
	if err != nil {
		return nil, err
	}

	return &models.Geolocation{
		IP:        ip,
		City:      result.City,
		Region:    result.RegionName,
		Country:   result.Country,
		Latitude:  result.Lat,
		Longitude: result.Lon,
	}, nil
}

func (p *IPAPIProvider) query(ctx context.Context, ip string) (*ipAPIResponse, error) {
	url := fmt.Sprintf("%s/%s?fields=%s", p.baseURL, ip, ipAPIFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query ip-api.com: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ip-api.com returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode ip-api.com response: %w", err)
	}
	if result.Status != "success" {
		return nil, fmt.Errorf("%w: ip-api.com: %s", ErrLookupFailed, result.Message)
	}
	return &result, nil
}
