package video

import (
	"fmt"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// PrefixError reports an arc without an id prefix.
type PrefixError struct {
	Title string
	// Closest is the known title nearest to Title, if any.
	Closest mo.Option[string]
}

func (e *PrefixError) Error() string {
	if closest, ok := e.Closest.Get(); ok {
		return fmt.Sprintf("new arc %q doesn't have a prefix, did you mean %q?", e.Title, closest)
	}
	return fmt.Sprintf("new arc %q doesn't have a prefix", e.Title)
}

func newPrefixError(title string, prefixes map[string]string) *PrefixError {
	titles := lo.Keys(prefixes)
	if len(titles) == 0 {
		return &PrefixError{Title: title}
	}

	if ranks := fuzzy.RankFindNormalizedFold(title, titles); len(ranks) > 0 {
		best := lo.MinBy(ranks, func(a, b fuzzy.Rank) bool {
			return a.Distance < b.Distance
		})
		return &PrefixError{Title: title, Closest: mo.Some(best.Target)}
	}

	closest := lo.MinBy(titles, func(a, b string) bool {
		return levenshtein.Distance(title, a) < levenshtein.Distance(title, b)
	})
	return &PrefixError{Title: title, Closest: mo.Some(closest)}
}
