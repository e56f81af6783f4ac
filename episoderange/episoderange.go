// Package episoderange parses anime episode range labels such as "5, 7-8, Episode of Nami".
package episoderange

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Set is a set of anime episode numbers.
type Set map[int]struct{}

// Has reports whether n is in the set.
func (s Set) Has(n int) bool {
	_, ok := s[n]
	return ok
}

// Add inserts every number of o into s.
func (s Set) Add(o Set) {
	for n := range o {
		s[n] = struct{}{}
	}
}

// Covers reports whether every number of o is in s.
// An empty o is always covered.
func (s Set) Covers(o Set) bool {
	return lo.EveryBy(lo.Keys(o), s.Has)
}

// Sorted returns the numbers in ascending order.
func (s Set) Sorted() []int {
	keys := lo.Keys(s)
	slices.Sort(keys)
	return keys
}

// ParseError reports a token that matches no known range form.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown anime episode range: %q", e.Token)
}

// MaxSpan is the widest span a single "A-B" token may cover.
const MaxSpan = 10000

var (
	singlePattern = regexp.MustCompile(`^[1-9]\d*( \(Intro\))?$`)
	spanPattern   = regexp.MustCompile(`^([1-9]\d*)-([1-9]\d*)$`)
	moviePattern  = regexp.MustCompile(`^\S.* \(movie [1-9]\d*\)$`)
)

// Parser turns range labels into episode sets.
// Specials without episode numbers are recognized from a fixed vocabulary.
type Parser struct {
	special *regexp.Regexp
}

// NewParser builds a parser accepting "Episode of <name>" for each of the given names.
func NewParser(specials []string) *Parser {
	p := &Parser{}
	if len(specials) > 0 {
		quoted := lo.Map(specials, func(s string, _ int) string {
			return regexp.QuoteMeta(s)
		})
		p.special = regexp.MustCompile(`^Episode of (` + strings.Join(quoted, "|") + `)$`)
	}
	return p
}

// Parse returns the episodes covered by spec. An empty spec covers nothing.
func (p *Parser) Parse(spec string) (Set, error) {
	set := make(Set)
	if strings.TrimSpace(spec) == "" {
		return set, nil
	}

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)

		switch {
		case singlePattern.MatchString(token):
			n, err := strconv.Atoi(strings.TrimSuffix(token, " (Intro)"))
			if err != nil {
				return nil, &ParseError{Token: token}
			}
			set[n] = struct{}{}
		case spanPattern.MatchString(token):
			bounds := spanPattern.FindStringSubmatch(token)
			from, errFrom := strconv.Atoi(bounds[1])
			to, errTo := strconv.Atoi(bounds[2])
			if errFrom != nil || errTo != nil || from > to || to-from >= MaxSpan {
				return nil, &ParseError{Token: token}
			}
			for n := from; n <= to; n++ {
				set[n] = struct{}{}
			}
		case p.special != nil && p.special.MatchString(token):
			// https://onepiece.fandom.com/wiki/Category:Specials
		case moviePattern.MatchString(token):
		default:
			return nil, &ParseError{Token: token}
		}
	}

	return set, nil
}
