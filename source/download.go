package source

import (
	"strings"

	"github.com/samber/lo"
)

// Kind is the variant of a download.
type Kind int

const (
	KindMagnet Kind = iota
	KindTorrent
	KindDirect
	KindOther
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMagnet:
		return "magnet"
	case KindTorrent:
		return "torrent"
	case KindDirect:
		return "direct"
	default:
		return "other"
	}
}

// Download is one way of getting an episode or arc.
type Download struct {
	Kind Kind   `json:"kind"`
	URI  string `json:"uri"`
	// InfoHash is the lowercase hex info hash for magnet and torrent downloads, empty otherwise.
	InfoHash string `json:"info_hash,omitempty"`
}

// HasInfoHash reports whether the download identifies a torrent by info hash.
func (d Download) HasInfoHash() bool {
	return (d.Kind == KindMagnet || d.Kind == KindTorrent) && d.InfoHash != ""
}

// Key returns the torrent resolution key of the download.
// Torrent files hosted at an absolute http(s) URL are fetched from that URL,
// everything else is resolved by info hash.
func (d Download) Key() string {
	if d.Kind == KindTorrent && (strings.HasPrefix(d.URI, "https://") || strings.HasPrefix(d.URI, "http://")) {
		return d.URI
	}
	return d.InfoHash
}

// Candidates returns the info hash bearing downloads of the given lists, in order,
// keeping only the first download of each info hash.
func Candidates(downloads ...[]Download) []Download {
	var candidates []Download
	for _, list := range downloads {
		candidates = append(candidates, lo.Filter(list, func(d Download, _ int) bool {
			return d.HasInfoHash()
		})...)
	}
	return lo.UniqBy(candidates, func(d Download) string {
		return d.InfoHash
	})
}
