// Package network provides the HTTP client shared by every remote lookup.
package network

import (
	"net/http"
	"time"
)

// Client is shared by the torrent fetcher, the metadata loader and the nyaa resolver.
// Torrent downloads are rate limited upstream, so the pool only needs to cover the configured burst.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
