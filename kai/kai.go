// Package kai fills catalog gaps with episodes of a Kai release, for anime
// episodes that no streamed episode covers yet.
package kai

import (
	"encoding/json"
	"fmt"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/episoderange"
	"github.com/au2001/onepace-stremio/reconcile"
	"github.com/au2001/onepace-stremio/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/afero"
)

// Document is a Kai release: one torrent whose files are listed in order.
type Document struct {
	InfoHash string    `json:"infoHash"`
	Episodes []Episode `json:"episodes"`
}

// Episode is one file of the Kai torrent.
type Episode struct {
	Arc           string `json:"arc"`
	Title         string `json:"title"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	Released      string `json:"released,omitempty"`
	AnimeEpisodes string `json:"anime_episodes"`
}

// Load reads a Kai document.
func Load(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &doc, nil
}

// IDFunc returns the video id of an episode number within an arc.
type IDFunc func(arc *source.Arc, episode int) (string, error)

// Filler appends Kai episodes to a catalog.
type Filler struct {
	parser *episoderange.Parser
	id     IDFunc
}

// NewFiller returns a filler.
func NewFiller(parser *episoderange.Parser, id IDFunc) *Filler {
	return &Filler{parser: parser, id: id}
}

// Fill returns an entry for every Kai episode whose anime episodes are not all in covered.
// New entries are numbered after the last episode of their arc's season.
func (f *Filler) Fill(doc *Document, arcs []*source.Arc, entries []reconcile.Entry, covered episoderange.Set) ([]reconcile.Entry, error) {
	byTitle := lo.SliceToMap(arcs, func(arc *source.Arc) (string, *source.Arc) {
		return arc.Title, arc
	})
	last := make(map[int]int)
	for _, e := range entries {
		last[e.Video.Season] = max(last[e.Video.Season], e.Video.Episode)
	}

	var filled []reconcile.Entry
	for fileIdx, episode := range doc.Episodes {
		animeEpisodes, err := f.parser.Parse(episode.AnimeEpisodes)
		if err != nil {
			return nil, fmt.Errorf("kai episode %q: %w", episode.Title, err)
		}
		if covered.Covers(animeEpisodes) {
			continue
		}

		arc, ok := byTitle[episode.Arc]
		if !ok {
			return nil, fmt.Errorf("unknown kai arc: %s", episode.Arc)
		}

		last[arc.Part]++
		number := last[arc.Part]

		id, err := f.id(arc, number)
		if err != nil {
			return nil, err
		}

		filled = append(filled, reconcile.Entry{
			Video: catalog.Video{
				Season:    arc.Part,
				Episode:   number,
				ID:        id,
				Title:     episode.Title,
				Thumbnail: episode.Thumbnail,
				Released:  episode.Released,
			},
			Stream: mo.Some(catalog.Stream{
				InfoHash: doc.InfoHash,
				FileIdx:  catalog.Index(fileIdx),
			}),
		})
	}

	return filled, nil
}
