// Package reconcile diffs a freshly built catalog against the persisted one,
// reports the changes and applies them to the store.
package reconcile

import (
	"fmt"
	"strconv"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// Entry is a freshly built video and its stream, if one was found.
type Entry struct {
	Video  catalog.Video
	Stream mo.Option[catalog.Stream]
	// Unresolved marks an entry whose stream could not be determined this run.
	// Its persisted stream, if any, is kept untouched.
	Unresolved bool
}

// Store is the persisted state the reconciler reads and writes.
type Store interface {
	Load() (*catalog.Document, error)
	Save(doc *catalog.Document) error
	LoadStream(id string) (mo.Option[catalog.Stream], error)
	SaveStream(id string, stream catalog.Stream) error
	DeleteStream(id string) error
	DeleteSubtitle(id string) error
}

// Prior is the persisted state of the previous run.
type Prior struct {
	Document *catalog.Document
	Streams  map[string]catalog.Stream
}

// Plan is the outcome of a diff, ready to be applied.
type Plan struct {
	// Videos is the fresh catalog ordered by season and episode.
	Videos []catalog.Video
	// Streams holds the stream record to write for every video that has one.
	Streams map[string]catalog.Stream
	// DeleteStreams and DeleteSubtitles list the artifacts to remove.
	DeleteStreams   []string
	DeleteSubtitles []string
	Events          []Event

	document *catalog.Document
}

// DuplicateError reports two fresh entries sharing an id.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("video id %s is produced twice", e.ID)
}

// Reconciler reconciles fresh entries with a store.
type Reconciler struct {
	store Store
}

// New returns a reconciler over store.
func New(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Load reads the persisted catalog and the streams of every persisted or fresh video.
func (r *Reconciler) Load(fresh []Entry) (*Prior, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	ids := lo.Uniq(append(
		lo.Map(doc.Videos, func(v catalog.Video, _ int) string { return v.ID }),
		lo.Map(fresh, func(e Entry, _ int) string { return e.Video.ID })...,
	))

	streams := make(map[string]catalog.Stream)
	for _, id := range ids {
		stream, err := r.store.LoadStream(id)
		if err != nil {
			return nil, fmt.Errorf("load stream of %s: %w", id, err)
		}
		if s, ok := stream.Get(); ok {
			streams[id] = s
		}
	}

	return &Prior{Document: doc, Streams: streams}, nil
}

// Plan loads the persisted state and diffs fresh against it. Nothing is written.
func (r *Reconciler) Plan(fresh []Entry) (*Plan, error) {
	prior, err := r.Load(fresh)
	if err != nil {
		return nil, err
	}
	return Diff(prior, fresh)
}

// Apply removes stale artifacts, writes stream records and finally the catalog.
func (r *Reconciler) Apply(plan *Plan) error {
	for _, event := range plan.Events {
		log.WithFields(log.Fields{
			"id":   event.ID,
			"kind": string(event.Kind),
			"from": event.From,
			"to":   event.To,
		}).Warn(event.String())
	}

	for _, id := range plan.DeleteSubtitles {
		if err := r.store.DeleteSubtitle(id); err != nil {
			return fmt.Errorf("delete subtitle %s: %w", id, err)
		}
	}

	for _, id := range plan.DeleteStreams {
		if err := r.store.DeleteStream(id); err != nil {
			return fmt.Errorf("delete stream of %s: %w", id, err)
		}
	}

	for _, v := range plan.Videos {
		stream, ok := plan.Streams[v.ID]
		if !ok {
			continue
		}
		if err := r.store.SaveStream(v.ID, stream); err != nil {
			return fmt.Errorf("save stream of %s: %w", v.ID, err)
		}
	}

	doc := plan.document
	if doc == nil {
		doc = &catalog.Document{}
	}
	doc.Videos = plan.Videos

	if err := r.store.Save(doc); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	return nil
}

// Reconcile plans and applies in one step.
func (r *Reconciler) Reconcile(fresh []Entry) (*Plan, error) {
	plan, err := r.Plan(fresh)
	if err != nil {
		return nil, err
	}
	return plan, r.Apply(plan)
}

// Diff compares fresh entries with the prior state.
// Identity violations and duplicate ids fail the whole diff.
func Diff(prior *Prior, fresh []Entry) (*Plan, error) {
	previous := lo.SliceToMap(prior.Document.Videos, func(v catalog.Video) (string, catalog.Video) {
		return v.ID, v
	})

	plan := &Plan{
		Streams:  make(map[string]catalog.Stream),
		document: prior.Document,
	}
	seen := make(map[string]struct{}, len(fresh))

	for _, entry := range fresh {
		v := entry.Video
		if _, ok := seen[v.ID]; ok {
			return nil, &DuplicateError{ID: v.ID}
		}
		seen[v.ID] = struct{}{}

		if old, ok := previous[v.ID]; ok {
			if err := checkIdentity(old, v); err != nil {
				return nil, err
			}
			plan.Events = append(plan.Events, diffVideo(old, v)...)
		} else {
			plan.Events = append(plan.Events, Event{ID: v.ID, Kind: Added})
		}

		plan.Videos = append(plan.Videos, v)
		old := mo.None[catalog.Stream]()
		if stream, ok := prior.Streams[v.ID]; ok {
			old = mo.Some(stream)
		}
		diffStream(plan, entry, old)
	}

	for _, old := range prior.Document.Videos {
		if _, ok := seen[old.ID]; ok {
			continue
		}

		plan.Events = append(plan.Events, Event{ID: old.ID, Kind: Removed})
		plan.DeleteStreams = append(plan.DeleteStreams, old.ID)
		if stream, ok := prior.Streams[old.ID]; ok {
			plan.DeleteSubtitles = append(plan.DeleteSubtitles, subtitleIDs(stream.Subtitles)...)
		}
	}

	catalog.Sort(plan.Videos)
	return plan, nil
}

func checkIdentity(old, fresh catalog.Video) error {
	if old.Season != fresh.Season {
		return &catalog.IdentityError{ID: old.ID, Field: "season", From: strconv.Itoa(old.Season), To: strconv.Itoa(fresh.Season)}
	}
	if old.Episode != fresh.Episode {
		return &catalog.IdentityError{ID: old.ID, Field: "episode", From: strconv.Itoa(old.Episode), To: strconv.Itoa(fresh.Episode)}
	}
	if old.ID != fresh.ID {
		return &catalog.IdentityError{ID: old.ID, Field: "id", From: old.ID, To: fresh.ID}
	}
	return nil
}

func diffVideo(old, fresh catalog.Video) []Event {
	fields := []struct {
		name     string
		from, to string
	}{
		{"title", old.Title, fresh.Title},
		{"thumbnail", old.Thumbnail, fresh.Thumbnail},
		{"overview", old.Overview, fresh.Overview},
		{"released", old.Released, fresh.Released},
	}

	var events []Event
	for _, f := range fields {
		if f.from != f.to {
			events = append(events, Event{ID: fresh.ID, Kind: Updated, Field: f.name, From: f.from, To: f.to})
		}
	}
	return events
}

func diffStream(plan *Plan, entry Entry, prior mo.Option[catalog.Stream]) {
	id := entry.Video.ID
	old, hadOld := prior.Get()

	if entry.Unresolved {
		if hadOld {
			plan.Streams[id] = old
		}
		return
	}

	fresh, hasFresh := entry.Stream.Get()

	switch {
	case hasFresh && hadOld:
		if !fresh.SameTarget(old) {
			plan.Events = append(plan.Events, Event{ID: id, Kind: ReReleased, From: old.String(), To: fresh.String()})
		}
		diffSubtitles(plan, id, old.Subtitles, fresh.Subtitles)
		plan.Streams[id] = fresh
	case hasFresh:
		plan.Events = append(plan.Events, Event{ID: id, Kind: StreamCreated, To: fresh.String()})
		diffSubtitles(plan, id, nil, fresh.Subtitles)
		plan.Streams[id] = fresh
	case hadOld:
		plan.Events = append(plan.Events, Event{ID: id, Kind: StreamRemoved, From: old.String()})
		plan.DeleteStreams = append(plan.DeleteStreams, id)
		plan.DeleteSubtitles = append(plan.DeleteSubtitles, subtitleIDs(old.Subtitles)...)
	}
}

func diffSubtitles(plan *Plan, id string, old, fresh []catalog.Subtitle) {
	byLang := func(s catalog.Subtitle) (string, catalog.Subtitle) { return s.Lang, s }
	oldLangs := lo.SliceToMap(old, byLang)
	freshLangs := lo.SliceToMap(fresh, byLang)

	removed := lo.Filter(lo.Keys(oldLangs), func(lang string, _ int) bool {
		_, ok := freshLangs[lang]
		return !ok
	})
	added := lo.Filter(lo.Keys(freshLangs), func(lang string, _ int) bool {
		_, ok := oldLangs[lang]
		return !ok
	})
	slices.Sort(removed)
	slices.Sort(added)

	for _, lang := range removed {
		plan.Events = append(plan.Events, Event{ID: id, Kind: SubtitlesRemoved, Field: lang, From: oldLangs[lang].ID})
		plan.DeleteSubtitles = append(plan.DeleteSubtitles, oldLangs[lang].ID)
	}
	for _, lang := range added {
		plan.Events = append(plan.Events, Event{ID: id, Kind: SubtitlesAdded, Field: lang, To: freshLangs[lang].ID})
	}
}

func subtitleIDs(subtitles []catalog.Subtitle) []string {
	return lo.Map(subtitles, func(s catalog.Subtitle, _ int) string { return s.ID })
}
