// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package services adapts MediaFTP components to suture.Service.
//
// Every service blocks in Serve until its context is canceled and returns
// ctx.Err() then; any other return is treated by suture as a crash and the
// service is restarted.
package services
