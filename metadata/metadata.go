// Package metadata loads the arc listing and normalizes every supported document version
// into source records.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/au2001/onepace-stremio/constant"
	"github.com/au2001/onepace-stremio/source"
	"github.com/spf13/afero"
)

var (
	torrentPattern = regexp.MustCompile(`^/torrents/([0-9a-f]{40})\.torrent$`)
	magnetPattern  = regexp.MustCompile(`^magnet:\?xt=urn:btih:([0-9a-f]{40})(?:&|$)`)
)

// URIError reports a magnet or torrent download whose URI carries no info hash.
type URIError struct {
	Kind source.Kind
	URI  string
}

func (e *URIError) Error() string {
	return fmt.Sprintf("no info hash in %s download %q", e.Kind, e.URI)
}

// Linker resolves third-party listing links into downloads.
type Linker interface {
	Resolve(ctx context.Context, link string) (source.Download, error)
}

// Loader reads metadata documents from disk or over HTTP.
type Loader struct {
	fs     afero.Fs
	client *http.Client
	linker Linker
}

// NewLoader returns a loader. linker resolves legacy nyaa downloads.
func NewLoader(fsys afero.Fs, client *http.Client, linker Linker) *Loader {
	return &Loader{fs: fsys, client: client, linker: linker}
}

// Load reads the document at location, a local path or an http(s) URL.
func (l *Loader) Load(ctx context.Context, location string) ([]*source.Arc, error) {
	data, err := l.read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", location, err)
	}
	return l.Decode(ctx, data)
}

// Decode normalizes a document of any supported version.
func (l *Loader) Decode(ctx context.Context, data []byte) ([]*source.Arc, error) {
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	switch header.Version {
	case 1:
		var doc DocumentV1
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode metadata v1: %w", err)
		}
		return l.fromV1(ctx, &doc)
	case 2:
		var doc DocumentV2
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode metadata v2: %w", err)
		}
		return fromV2(&doc)
	default:
		return nil, fmt.Errorf("unknown metadata version %d", header.Version)
	}
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "https://") && !strings.HasPrefix(location, "http://") {
		return afero.ReadFile(l.fs, location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	return io.ReadAll(res.Body)
}

// hashed builds a magnet or torrent download, extracting its info hash.
func hashed(kind source.Kind, uri string) (source.Download, error) {
	pattern := torrentPattern
	if kind == source.KindMagnet {
		pattern = magnetPattern
	}

	m := pattern.FindStringSubmatch(uri)
	if m == nil {
		return source.Download{}, &URIError{Kind: kind, URI: uri}
	}
	return source.Download{Kind: kind, URI: uri, InfoHash: m[1]}, nil
}
