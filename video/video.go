// Package video assembles the public catalog entry of an episode.
package video

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/source"
)

// ReleasedLayout is the timestamp format of published release dates.
const ReleasedLayout = "2006-01-02T15:04:05.000Z07:00"

// UnreleasedTitle replaces the title of episodes that are not out yet.
const UnreleasedTitle = "Unreleased"

// Options configures an Assembler.
type Options struct {
	// Prefixes maps invariant arc titles to video id prefixes.
	Prefixes map[string]string
	// Language is the preferred translation language code.
	Language string
	// MediaBase is the absolute URL thumbnails are rooted at.
	MediaBase string
	// Placeholder is the image used when an episode has none, relative to MediaBase.
	Placeholder string
	// ImageMime is the preferred image mime type.
	ImageMime string
}

// Assembler builds videos from arcs and episodes.
type Assembler struct {
	options Options
}

// New returns an assembler.
func New(options Options) *Assembler {
	if !strings.HasSuffix(options.MediaBase, "/") {
		options.MediaBase += "/"
	}
	return &Assembler{options: options}
}

// Prefix returns the id prefix of an arc.
func (a *Assembler) Prefix(arc *source.Arc) (string, error) {
	prefix, ok := a.options.Prefixes[arc.Title]
	if !ok {
		return "", newPrefixError(arc.Title, a.options.Prefixes)
	}
	return prefix, nil
}

// ID returns the video id of an episode number within an arc.
func (a *Assembler) ID(arc *source.Arc, episode int) (string, error) {
	prefix, err := a.Prefix(arc)
	if err != nil {
		return "", err
	}
	return prefix + "_" + strconv.Itoa(episode), nil
}

// Assemble builds the video of an episode.
func (a *Assembler) Assemble(arc *source.Arc, episode *source.Episode) (catalog.Video, error) {
	id, err := a.ID(arc, episode.Part)
	if err != nil {
		return catalog.Video{}, err
	}

	v := catalog.Video{
		Season:    arc.Part,
		Episode:   episode.Part,
		ID:        id,
		Title:     UnreleasedTitle,
		Thumbnail: a.Thumbnail(episode),
	}

	if !episode.Released() {
		return v, nil
	}

	released, err := ParseReleased(episode.ReleasedAt)
	if err != nil {
		return catalog.Video{}, fmt.Errorf("%s released at: %w", id, err)
	}
	v.Released = released.UTC().Format(ReleasedLayout)

	v.Title = episode.InvariantTitle
	if t, ok := episode.Translation(a.options.Language).Get(); ok {
		if t.Title != "" {
			v.Title = t.Title
		}
		v.Overview = t.Description
	}

	return v, nil
}

// Thumbnail returns the absolute thumbnail URL of an episode.
func (a *Assembler) Thumbnail(episode *source.Episode) string {
	if img, ok := episode.Image(a.options.ImageMime).Get(); ok {
		return a.options.MediaBase + "episodes/" + img.Src
	}
	return a.options.MediaBase + a.options.Placeholder
}

// ParseReleased parses an RFC 3339 timestamp or a bare date.
func ParseReleased(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
