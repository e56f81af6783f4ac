package source

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Episode is one part of an arc.
type Episode struct {
	Part           int           `json:"part"`
	InvariantTitle string        `json:"invariant_title"`
	Translations   []Translation `json:"translations,omitempty"`
	Images         []Image       `json:"images,omitempty"`
	// ReleasedAt is the raw release timestamp as published by the metadata source.
	ReleasedAt    string     `json:"released_at,omitempty"`
	MangaChapters string     `json:"manga_chapters,omitempty"`
	AnimeEpisodes string     `json:"anime_episodes,omitempty"`
	Downloads     []Download `json:"downloads,omitempty"`

	// ReleaseStatus is set when the source states the release status explicitly.
	ReleaseStatus mo.Option[bool] `json:"-"`
}

// String returns a short human label such as "E07 Shells Town".
func (e *Episode) String() string {
	return fmt.Sprintf("E%02d %s", e.Part, e.InvariantTitle)
}

// Released reports whether the episode is out.
// An explicit release status wins over the presence of downloads.
func (e *Episode) Released() bool {
	if released, ok := e.ReleaseStatus.Get(); ok {
		return released
	}
	return len(e.Downloads) > 0
}

// Translation returns the translation for the given language code, if any.
func (e *Episode) Translation(language string) mo.Option[Translation] {
	t, ok := lo.Find(e.Translations, func(t Translation) bool {
		return t.Language == language
	})
	if !ok {
		return mo.None[Translation]()
	}
	return mo.Some(t)
}

// Image returns the first image of the preferred mime type, else the first image.
func (e *Episode) Image(mimeType string) mo.Option[Image] {
	if img, ok := lo.Find(e.Images, func(img Image) bool {
		return img.MimeType == mimeType
	}); ok {
		return mo.Some(img)
	}
	if len(e.Images) == 0 {
		return mo.None[Image]()
	}
	return mo.Some(e.Images[0])
}
