package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/au2001/onepace-stremio/source"
	"github.com/samber/mo"
)

// DocumentV1 is the legacy spreadsheet export.
type DocumentV1 struct {
	Version int     `json:"version"`
	Arcs    []ArcV1 `json:"arcs"`
}

type ArcV1 struct {
	Number   int         `json:"number"`
	Title    string      `json:"title"`
	Episodes []EpisodeV1 `json:"episodes"`
}

type EpisodeV1 struct {
	Number        int          `json:"number"`
	Title         string       `json:"title"`
	ReleaseDate   string       `json:"releaseDate,omitempty"`
	Released      *bool        `json:"released,omitempty"`
	MangaChapters string       `json:"mangaChapters,omitempty"`
	AnimeEpisodes string       `json:"animeEpisodes,omitempty"`
	Downloads     []DownloadV1 `json:"downloads,omitempty"`
}

// DownloadV1 has a string type: magnet, torrent, direct or nyaa.
type DownloadV1 struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

func (l *Loader) fromV1(ctx context.Context, doc *DocumentV1) ([]*source.Arc, error) {
	arcs := make([]*source.Arc, 0, len(doc.Arcs))

	for _, a := range doc.Arcs {
		arc := &source.Arc{Part: a.Number, Title: a.Title}

		for _, e := range a.Episodes {
			episode := &source.Episode{
				Part:           e.Number,
				InvariantTitle: e.Title,
				MangaChapters:  e.MangaChapters,
				AnimeEpisodes:  e.AnimeEpisodes,
				ReleaseStatus:  mo.PointerToOption(e.Released),
			}

			if e.ReleaseDate != "" {
				released, err := time.Parse("2006-01-02", e.ReleaseDate)
				if err != nil {
					released, err = time.Parse(time.RFC3339, e.ReleaseDate)
				}
				if err != nil {
					return nil, fmt.Errorf("%s %d release date: %w", a.Title, e.Number, err)
				}
				episode.ReleasedAt = released.UTC().Format(time.RFC3339)
			}

			for _, d := range e.Downloads {
				download, err := l.downloadV1(ctx, d)
				if err != nil {
					return nil, err
				}
				episode.Downloads = append(episode.Downloads, download)
			}

			arc.Episodes = append(arc.Episodes, episode)
		}

		arcs = append(arcs, arc)
	}

	return arcs, nil
}

func (l *Loader) downloadV1(ctx context.Context, d DownloadV1) (source.Download, error) {
	switch d.Type {
	case "magnet":
		return hashed(source.KindMagnet, d.URI)
	case "torrent":
		return hashed(source.KindTorrent, d.URI)
	case "direct":
		return source.Download{Kind: source.KindDirect, URI: d.URI}, nil
	case "nyaa":
		if l.linker == nil {
			return source.Download{}, fmt.Errorf("no resolver for nyaa download %s", d.URI)
		}
		return l.linker.Resolve(ctx, d.URI)
	default:
		return source.Download{}, fmt.Errorf("unknown download type %q", d.Type)
	}
}
