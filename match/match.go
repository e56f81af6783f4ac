// Package match picks the torrent file holding an episode.
package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/source"
	"github.com/au2001/onepace-stremio/torrent"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Matcher finds episodes in the torrents of their arc and episode downloads.
type Matcher struct {
	resolver torrent.Resolver
}

// New returns a matcher resolving torrents with resolver.
func New(resolver torrent.Resolver) *Matcher {
	return &Matcher{resolver: resolver}
}

// Needles returns the substrings identifying the file of an episode.
func Needles(episode *source.Episode) []string {
	needles := []string{fmt.Sprintf(" %02d ", episode.Part)}

	if episode.MangaChapters != "" {
		needles = append(needles,
			" "+episode.MangaChapters+" ",
			"["+strings.TrimSuffix(episode.MangaChapters, " cover stories")+"]",
		)
	}

	return needles
}

// Match returns the stream of a released episode.
//
// Candidates are the info hash downloads of the arc then of the episode.
// The first candidate holding a matching file wins, and within it the first matching file.
// No match is not an error. A resolution failure fails the whole episode.
func (m *Matcher) Match(ctx context.Context, arc *source.Arc, episode *source.Episode) (mo.Option[catalog.Stream], error) {
	if !episode.Released() {
		return mo.None[catalog.Stream](), nil
	}

	needles := Needles(episode)

	for _, candidate := range source.Candidates(arc.Downloads, episode.Downloads) {
		meta, err := m.resolver.Resolve(ctx, candidate.Key())
		if err != nil {
			return mo.None[catalog.Stream](), fmt.Errorf("match %s %s: %w", arc, episode, err)
		}

		if meta == nil || len(meta.Files) == 0 {
			continue
		}

		_, index, found := lo.FindIndexOf(meta.Files, func(f torrent.File) bool {
			return lo.SomeBy(needles, func(needle string) bool {
				return strings.Contains(f.Name, needle)
			})
		})
		if !found {
			continue
		}

		stream := catalog.Stream{InfoHash: candidate.InfoHash}
		if len(meta.Files) > 1 {
			stream.FileIdx = catalog.Index(index)
		}

		return mo.Some(stream), nil
	}

	return mo.None[catalog.Stream](), nil
}
