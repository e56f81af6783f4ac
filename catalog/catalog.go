// Package catalog holds the published records: videos, their streams and subtitles,
// and the store that reads and writes them.
package catalog

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
)

// Video is one catalog entry. Season, Episode and ID never change once published.
type Video struct {
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Overview  string `json:"overview,omitempty"`
	Released  string `json:"released,omitempty"`
}

// Stream is the playable source of a video.
type Stream struct {
	InfoHash string `json:"infoHash"`
	// FileIdx is set only for torrents holding more than one file.
	FileIdx   *int       `json:"fileIdx,omitempty"`
	Subtitles []Subtitle `json:"subtitles,omitempty"`
}

// String returns "<infoHash>" or "<infoHash>:<fileIdx>".
func (s Stream) String() string {
	if s.FileIdx == nil {
		return s.InfoHash
	}
	return s.InfoHash + ":" + strconv.Itoa(*s.FileIdx)
}

// SameTarget reports whether both streams point at the same file of the same torrent.
func (s Stream) SameTarget(o Stream) bool {
	if s.InfoHash != o.InfoHash {
		return false
	}
	if s.FileIdx == nil || o.FileIdx == nil {
		return s.FileIdx == nil && o.FileIdx == nil
	}
	return *s.FileIdx == *o.FileIdx
}

// Subtitle is a subtitle track of a stream, unique per language within it.
type Subtitle struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// IdentityError reports a published video whose season, episode or id would change.
type IdentityError struct {
	ID    string
	Field string
	From  string
	To    string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("%s's %s changed from %s to %s", e.ID, e.Field, e.From, e.To)
}

// Sort orders videos by season then episode.
func Sort(videos []Video) {
	slices.SortStableFunc(videos, func(a, b Video) int {
		if a.Season != b.Season {
			return a.Season - b.Season
		}
		return a.Episode - b.Episode
	})
}

// Index returns a pointer to the file index, for building streams.
func Index(i int) *int {
	return &i
}
