// Package nyaa resolves nyaa.si listing links into torrent downloads.
package nyaa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/au2001/onepace-stremio/constant"
	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/log"
	"github.com/au2001/onepace-stremio/source"
	"github.com/metafates/gache"
	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/samber/mo"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// DefaultBase is the nyaa.si origin.
const DefaultBase = "https://nyaa.si"

var infoHashPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// UnsupportedURLError reports a link that is neither a view page nor an info hash search.
type UnsupportedURLError struct {
	URL string
}

func (e *UnsupportedURLError) Error() string {
	return fmt.Sprintf("unsupported nyaa.si URL format: %s", e.URL)
}

// cacheData maps nyaa ids to info hashes.
type cacheData struct {
	Hashes map[string]string `json:"hashes"`
}

type lookup struct {
	id, infoHash string
}

type flight struct {
	once   sync.Once
	result lookup
	err    error
}

// Options configures a Resolver.
type Options struct {
	Client *http.Client
	// Base is the nyaa origin, DefaultBase if empty.
	Base string
	// Rate is the number of page requests allowed per second.
	Rate float64
	// CachePath is the JSON file remembering resolved ids.
	CachePath string
}

// Resolver turns nyaa links into torrent downloads, remembering every resolution on disk.
type Resolver struct {
	client  *http.Client
	base    string
	limiter *rate.Limiter
	flights *csmap.CsMap[string, *flight]

	mu    sync.Mutex
	cache *gache.Cache[*cacheData]

	viewPattern, searchPattern *regexp.Regexp
}

// New returns a resolver.
func New(options Options) *Resolver {
	base := strings.TrimSuffix(options.Base, "/")
	if base == "" {
		base = DefaultBase
	}

	limit := rate.Inf
	if options.Rate > 0 {
		limit = rate.Limit(options.Rate)
	}

	quoted := regexp.QuoteMeta(base)
	return &Resolver{
		client:  options.Client,
		base:    base,
		limiter: rate.NewLimiter(limit, 1),
		flights: csmap.Create[string, *flight](),
		cache: gache.New[*cacheData](&gache.Options{
			Path:       options.CachePath,
			FileSystem: &filesystem.GacheFs{},
		}),
		viewPattern:   regexp.MustCompile(`^` + quoted + `/view/(\d+)$`),
		searchPattern: regexp.MustCompile(`^` + quoted + `/\?q=([0-9a-f]+)$`),
	}
}

// Supports reports whether link is a nyaa link this resolver understands.
func (r *Resolver) Supports(link string) bool {
	return r.viewPattern.MatchString(link) || r.searchPattern.MatchString(link)
}

// Resolve returns the torrent download behind a view page or an info hash search.
func (r *Resolver) Resolve(ctx context.Context, link string) (source.Download, error) {
	var id, infoHash string
	if m := r.viewPattern.FindStringSubmatch(link); m != nil {
		id = m[1]
	} else if m := r.searchPattern.FindStringSubmatch(link); m != nil {
		infoHash = m[1]
	} else {
		return source.Download{}, &UnsupportedURLError{URL: link}
	}

	if id != "" {
		if hash, ok := r.hashOf(id).Get(); ok {
			return r.download(id, hash), nil
		}
	} else if cached, ok := r.idOf(infoHash).Get(); ok {
		return r.download(cached, infoHash), nil
	}

	r.flights.SetIfAbsent(link, &flight{})
	f, _ := r.flights.Load(link)
	f.once.Do(func() {
		f.result, f.err = r.fetch(ctx, link)
		if f.err == nil {
			if err := r.remember(f.result.id, f.result.infoHash); err != nil {
				log.Warnf("nyaa cache: %v", err)
			}
		}
	})
	if f.err != nil {
		return source.Download{}, f.err
	}

	return r.download(f.result.id, f.result.infoHash), nil
}

func (r *Resolver) download(id, infoHash string) source.Download {
	return source.Download{
		Kind:     source.KindTorrent,
		URI:      r.base + "/download/" + id + ".torrent",
		InfoHash: infoHash,
	}
}

func (r *Resolver) fetch(ctx context.Context, link string) (lookup, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return lookup{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return lookup{}, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	res, err := r.client.Do(req)
	if err != nil {
		return lookup{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return lookup{}, fmt.Errorf("%s: unexpected status %s", link, res.Status)
	}

	m := r.viewPattern.FindStringSubmatch(res.Request.URL.String())
	if m == nil {
		return lookup{}, fmt.Errorf("%s did not lead to a view page", link)
	}

	infoHash, err := FindInfoHash(res.Body)
	if err != nil {
		return lookup{}, fmt.Errorf("%s: %w", link, err)
	}

	return lookup{id: m[1], infoHash: infoHash}, nil
}

// FindInfoHash returns the first <kbd> element of a view page holding an info hash.
func FindInfoHash(body io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(body)
	inKbd := false

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return "", err
			}
			return "", fmt.Errorf("no info hash on page")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inKbd = string(name) == "kbd"
		case html.EndTagToken:
			inKbd = false
		case html.TextToken:
			if !inKbd {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if infoHashPattern.MatchString(text) {
				return text, nil
			}
		}
	}
}

func (r *Resolver) load() *cacheData {
	data, expired, err := r.cache.Get()
	if err != nil || expired || data == nil {
		return &cacheData{Hashes: make(map[string]string)}
	}
	if data.Hashes == nil {
		data.Hashes = make(map[string]string)
	}
	return data
}

func (r *Resolver) hashOf(id string) mo.Option[string] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hash, ok := r.load().Hashes[id]; ok {
		return mo.Some(hash)
	}
	return mo.None[string]()
}

func (r *Resolver) idOf(infoHash string) mo.Option[string] {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, hash := range r.load().Hashes {
		if hash == infoHash {
			return mo.Some(id)
		}
	}
	return mo.None[string]()
}

func (r *Resolver) remember(id, infoHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.load()
	data.Hashes[id] = infoHash
	return r.cache.Set(data)
}
