package metadata

import (
	"github.com/au2001/onepace-stremio/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Download types of the current document version.
const (
	TypeMagnet = iota
	TypeTorrent
	TypeDirect
	TypePixeldrain
	TypeTelegram
)

// DocumentV2 is the current metadata document.
type DocumentV2 struct {
	Version int     `json:"version" jsonschema:"enum=2"`
	Arcs    []ArcV2 `json:"arcs"`
}

type TranslationV2 struct {
	LanguageCode string `json:"language_code"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
}

type ImageV2 struct {
	Src      string `json:"src"`
	MimeType string `json:"mimeType"`
	Width    int    `json:"width,omitempty"`
}

type DownloadV2 struct {
	ID   string `json:"id,omitempty"`
	Type int    `json:"type" jsonschema:"enum=0,enum=1,enum=2,enum=3,enum=4"`
	URI  string `json:"uri"`
}

type EpisodeV2 struct {
	ID             string          `json:"id,omitempty"`
	Part           int             `json:"part"`
	InvariantTitle string          `json:"invariant_title"`
	ReleasedAt     string          `json:"released_at,omitempty"`
	Released       *bool           `json:"released,omitempty"`
	MangaChapters  string          `json:"manga_chapters,omitempty"`
	AnimeEpisodes  string          `json:"anime_episodes,omitempty"`
	Translations   []TranslationV2 `json:"translations,omitempty"`
	Images         []ImageV2       `json:"images,omitempty"`
	Downloads      []DownloadV2    `json:"downloads,omitempty"`
}

type ArcV2 struct {
	ID             string          `json:"id,omitempty"`
	Part           int             `json:"part"`
	InvariantTitle string          `json:"invariant_title"`
	Translations   []TranslationV2 `json:"translations,omitempty"`
	Episodes       []EpisodeV2     `json:"episodes"`
	Downloads      []DownloadV2    `json:"downloads,omitempty"`
}

func fromV2(doc *DocumentV2) ([]*source.Arc, error) {
	arcs := make([]*source.Arc, 0, len(doc.Arcs))

	for _, a := range doc.Arcs {
		arc := &source.Arc{
			ID:           a.ID,
			Part:         a.Part,
			Title:        a.InvariantTitle,
			Translations: lo.Map(a.Translations, translationV2),
		}

		var err error
		if arc.Downloads, err = downloadsV2(a.Downloads); err != nil {
			return nil, err
		}

		for _, e := range a.Episodes {
			episode := &source.Episode{
				Part:           e.Part,
				InvariantTitle: e.InvariantTitle,
				Translations:   lo.Map(e.Translations, translationV2),
				Images: lo.Map(e.Images, func(img ImageV2, _ int) source.Image {
					return source.Image{Src: img.Src, MimeType: img.MimeType, Width: img.Width}
				}),
				ReleasedAt:    e.ReleasedAt,
				MangaChapters: e.MangaChapters,
				AnimeEpisodes: e.AnimeEpisodes,
				ReleaseStatus: mo.PointerToOption(e.Released),
			}

			if episode.Downloads, err = downloadsV2(e.Downloads); err != nil {
				return nil, err
			}

			arc.Episodes = append(arc.Episodes, episode)
		}

		arcs = append(arcs, arc)
	}

	return arcs, nil
}

func translationV2(t TranslationV2, _ int) source.Translation {
	return source.Translation{Language: t.LanguageCode, Title: t.Title, Description: t.Description}
}

func downloadsV2(downloads []DownloadV2) ([]source.Download, error) {
	result := make([]source.Download, 0, len(downloads))

	for _, d := range downloads {
		switch d.Type {
		case TypeMagnet, TypeTorrent:
			download, err := hashed(lo.Ternary(d.Type == TypeMagnet, source.KindMagnet, source.KindTorrent), d.URI)
			if err != nil {
				return nil, err
			}
			result = append(result, download)
		case TypeDirect:
			result = append(result, source.Download{Kind: source.KindDirect, URI: d.URI})
		default:
			result = append(result, source.Download{Kind: source.KindOther, URI: d.URI})
		}
	}

	return result, nil
}
