// Package pipeline builds the catalog: it resolves every episode of the arc listing,
// fills Kai gaps, reconciles against the persisted catalog and commits the result.
package pipeline

import (
	"context"
	"errors"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/episoderange"
	"github.com/au2001/onepace-stremio/kai"
	"github.com/au2001/onepace-stremio/log"
	"github.com/au2001/onepace-stremio/match"
	"github.com/au2001/onepace-stremio/reconcile"
	"github.com/au2001/onepace-stremio/source"
	"github.com/au2001/onepace-stremio/subtitle"
	"github.com/au2001/onepace-stremio/torrent"
	"github.com/au2001/onepace-stremio/video"
	"github.com/samber/mo"
	"github.com/sourcegraph/conc/pool"
)

// Loader reads the arc listing.
type Loader interface {
	Load(ctx context.Context, location string) ([]*source.Arc, error)
}

// Options wires the components of a run.
type Options struct {
	Loader Loader
	// Source is the location handed to Loader.
	Source string

	Assembler *video.Assembler
	Matcher   *match.Matcher
	Store     *catalog.Store

	// Subtitles is nil when subtitles are disabled.
	Subtitles  *subtitle.Builder
	Transcoder subtitle.Transcoder

	// Kai is nil when the fill-in is disabled.
	Kai    *kai.Document
	Parser *episoderange.Parser

	// Workers bounds the episodes resolved at once.
	Workers int
	// DryRun computes the plan without transcoding or writing anything.
	DryRun bool
}

// Result summarizes a run.
type Result struct {
	Plan       *reconcile.Plan
	Episodes   int
	Kai        int
	Unresolved int
	Transcoded int
}

// resolved is the outcome of one episode.
type resolved struct {
	arc     *source.Arc
	episode *source.Episode
	entry   reconcile.Entry
	jobs    []subtitle.Job
}

// IsFatal reports whether err must abort the run.
// Only remote fetch failures are tolerated, and only per episode.
func IsFatal(err error) bool {
	var fetchErr *torrent.FetchError
	return err != nil && !errors.As(err, &fetchErr)
}

// Run builds and commits the catalog.
// Nothing is written unless every episode was resolved or tolerated and reconciliation succeeded.
func Run(ctx context.Context, options Options) (*Result, error) {
	arcs, err := options.Loader.Load(ctx, options.Source)
	if err != nil {
		return nil, err
	}

	episodes, err := resolveAll(ctx, options, arcs)
	if err != nil {
		return nil, err
	}

	result := &Result{Episodes: len(episodes)}

	entries := make([]reconcile.Entry, 0, len(episodes))
	var jobs []subtitle.Job
	for _, r := range episodes {
		entries = append(entries, r.entry)
		jobs = append(jobs, r.jobs...)
		if r.entry.Unresolved {
			result.Unresolved++
		}
	}

	if options.Kai != nil {
		filled, err := fillKai(options, arcs, episodes, entries)
		if err != nil {
			return nil, err
		}
		result.Kai = len(filled)
		entries = append(entries, filled...)
	}

	reconciler := reconcile.New(options.Store)

	plan, err := reconciler.Plan(entries)
	if err != nil {
		return nil, err
	}
	result.Plan = plan

	if options.DryRun {
		return result, nil
	}

	if result.Transcoded, err = transcode(ctx, options, jobs); err != nil {
		return nil, err
	}

	if err := reconciler.Apply(plan); err != nil {
		return nil, err
	}

	return result, nil
}

func resolveAll(ctx context.Context, options Options, arcs []*source.Arc) ([]resolved, error) {
	var results []resolved
	for _, arc := range arcs {
		for _, episode := range arc.Episodes {
			results = append(results, resolved{arc: arc, episode: episode})
		}
	}

	p := pool.New().
		WithMaxGoroutines(max(options.Workers, 1)).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i := range results {
		r := &results[i]
		p.Go(func(ctx context.Context) error {
			return resolve(ctx, options, r)
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func resolve(ctx context.Context, options Options, r *resolved) error {
	v, err := options.Assembler.Assemble(r.arc, r.episode)
	if err != nil {
		return err
	}
	r.entry.Video = v

	stream, err := options.Matcher.Match(ctx, r.arc, r.episode)
	if IsFatal(err) {
		return err
	}
	if err != nil {
		log.WithFields(log.Fields{"id": v.ID}).Warnf("no stream this run: %v", err)
		r.entry.Unresolved = true
		return nil
	}

	s, ok := stream.Get()
	if !ok {
		return nil
	}

	if options.Subtitles != nil {
		if s.Subtitles, r.jobs, err = options.Subtitles.For(r.arc, v); err != nil {
			return err
		}
	}

	r.entry.Stream = mo.Some(s)
	return nil
}
