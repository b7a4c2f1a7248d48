// Package timeouts defines shared timeout constants used across the site.
// Centralizing these values keeps the durations discoverable.
package timeouts

import "time"

// BackendRequest caps the time allowed for a single backend HTTP call.
const BackendRequest = 15 * time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
