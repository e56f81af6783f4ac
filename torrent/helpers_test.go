package torrent

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anacrolix/torrent/bencode"
	"github.com/anacrolix/torrent/metainfo"
	"github.com/samber/lo"
)

// buildTorrent encodes a torrent with the given file names.
// A single name yields a single-file torrent.
func buildTorrent(name string, files ...string) []byte {
	info := metainfo.Info{
		PieceLength: 16384,
		Pieces:      make([]byte, 20),
		Name:        name,
	}

	if len(files) == 0 {
		info.Length = 1024
	}
	for _, f := range files {
		info.Files = append(info.Files, metainfo.FileInfo{Path: []string{f}, Length: 1024})
	}

	mi := metainfo.MetaInfo{InfoBytes: lo.Must(bencode.Marshal(info))}

	var buf bytes.Buffer
	lo.Must0(mi.Write(&buf))
	return buf.Bytes()
}

// countingFetcher serves canned torrents and counts calls per key.
type countingFetcher struct {
	mu       sync.Mutex
	torrents map[string][]byte
	calls    map[string]int
	times    []time.Time
	total    atomic.Int64
	delay    time.Duration
}

func newCountingFetcher(torrents map[string][]byte) *countingFetcher {
	return &countingFetcher{torrents: torrents, calls: make(map[string]int)}
}

func (f *countingFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	f.total.Add(1)
	f.mu.Lock()
	f.calls[key]++
	f.times = append(f.times, time.Now())
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	data, ok := f.torrents[key]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return data, nil
}

func (f *countingFetcher) Calls(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

// Times returns when each download started, in call order.
func (f *countingFetcher) Times() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.times...)
}
