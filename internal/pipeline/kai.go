package pipeline

import (
	"fmt"

	"github.com/au2001/onepace-stremio/episoderange"
	"github.com/au2001/onepace-stremio/kai"
	"github.com/au2001/onepace-stremio/reconcile"
	"github.com/au2001/onepace-stremio/source"
)

// fillKai appends Kai entries for anime episodes not covered by the listing.
// An unresolved episode still covers its anime episodes, so a flaky download does not swap it for Kai.
func fillKai(options Options, arcs []*source.Arc, episodes []resolved, entries []reconcile.Entry) ([]reconcile.Entry, error) {
	covered := make(episoderange.Set)

	for _, r := range episodes {
		if !r.episode.Released() || (r.entry.Stream.IsAbsent() && !r.entry.Unresolved) {
			continue
		}

		animeEpisodes, err := options.Parser.Parse(r.episode.AnimeEpisodes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.entry.Video.ID, err)
		}
		covered.Add(animeEpisodes)
	}

	filler := kai.NewFiller(options.Parser, options.Assembler.ID)
	return filler.Fill(options.Kai, arcs, entries, covered)
}
