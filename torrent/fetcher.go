package torrent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/au2001/onepace-stremio/constant"
)

// Fetcher downloads raw torrent bytes for a key.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// HTTPFetcher downloads torrents over HTTP.
// Info hashes are substituted into Endpoint, http(s) keys are fetched as is.
type HTTPFetcher struct {
	Client   *http.Client
	Endpoint string
}

// URL returns the address a key is downloaded from.
func (f *HTTPFetcher) URL(key string) string {
	if IsURI(key) {
		return key
	}
	return fmt.Sprintf(f.Endpoint, key)
}

func (f *HTTPFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(key), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	res, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}

	return io.ReadAll(res.Body)
}

// IsURI reports whether key is an http(s) URI rather than an info hash.
func IsURI(key string) bool {
	return strings.HasPrefix(key, "https://") || strings.HasPrefix(key, "http://")
}
