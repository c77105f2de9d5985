// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// RedisDial caps the startup ping against the thumbnail cache.
const RedisDial = 2 * time.Second

// WatchDebounce coalesces bursts of filesystem events into one rescan.
const WatchDebounce = 250 * time.Millisecond
