// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package geoip resolves client addresses to approximate locations for
// the visitor log. Lookups are best effort: every failure is reported as a
// LookupResult, never as a panic or a blocked request.
package geoip

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/tomtom215/mediaftp/internal/models"
)

var (
	// ErrInvalidIP is returned for strings that are not IP addresses.
	ErrInvalidIP = errors.New("geoip: invalid IP address")

	// ErrRateLimited is returned when the provider's request budget is spent.
	ErrRateLimited = errors.New("geoip: rate limit exceeded")

	// ErrLookupFailed is returned when the provider answered but could not
	// locate the address (reserved range, bad query).
	ErrLookupFailed = errors.New("geoip: lookup failed")
)

// Provider looks up a single IP address.
type Provider interface {
	// Lookup returns the location of ip.
	Lookup(ctx context.Context, ip string) (*models.Geolocation, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}

var privateNetworks = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"::1/128",   // IPv6 loopback
	"fc00::/7",  // IPv6 unique local
	"fe80::/10", // IPv6 link-local
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, len(cidrs))
	for i, cidr := range cidrs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		nets[i] = n
	}
	return nets
}

// IsPrivateIP reports whether ip is a loopback, link-local or private
// (RFC 1918 / RFC 4193) address. Unparseable input returns false.
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range privateNetworks {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// NormalizeIP strips ports and IPv6 brackets:
//
//	"203.0.113.7:5123"    -> "203.0.113.7"
//	"[2001:db8::1]:443"   -> "2001:db8::1"
//	"2001:db8::1"         -> "2001:db8::1"
func NormalizeIP(addr string) string {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

// LocalGeolocation is the location reported for private addresses.
func LocalGeolocation(ip string) *models.Geolocation {
	return &models.Geolocation{
		IP:      ip,
		City:    "Local Network",
		Country: "Local",
	}
}
