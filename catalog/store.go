package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/samber/mo"
	"github.com/spf13/afero"
)

// Document is the persisted catalog.
// Meta keeps every field of the "meta" object besides videos so they survive a rewrite.
type Document struct {
	Meta   map[string]json.RawMessage
	Videos []Video
}

type documentJSON struct {
	Meta map[string]json.RawMessage `json:"meta"`
}

// Store reads and writes catalog artifacts below a root directory:
// meta/series/<name>.json, stream/series/<id>.json and static/<subtitle id>.srt.
type Store struct {
	fs   afero.Fs
	root string
	name string
}

// NewStore returns a store for the catalog called name below root.
func NewStore(fsys afero.Fs, root, name string) *Store {
	return &Store{fs: fsys, root: root, name: name}
}

// Fs returns the filesystem the store writes to.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// CatalogPath returns the path of the catalog document.
func (s *Store) CatalogPath() string {
	return filepath.Join(s.root, "meta", "series", s.name+".json")
}

// StreamPath returns the path of the stream record of a video.
func (s *Store) StreamPath(id string) string {
	return filepath.Join(s.root, "stream", "series", id+".json")
}

// SubtitlePath returns the path of a subtitle artifact.
func (s *Store) SubtitlePath(id string) string {
	return filepath.Join(s.root, "static", id+".srt")
}

// Load reads the catalog. A missing catalog is an empty document.
func (s *Store) Load() (*Document, error) {
	data, err := afero.ReadFile(s.fs, s.CatalogPath())
	if errors.Is(err, fs.ErrNotExist) {
		return &Document{Meta: make(map[string]json.RawMessage)}, nil
	}
	if err != nil {
		return nil, err
	}

	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.CatalogPath(), err)
	}

	doc := &Document{Meta: raw.Meta}
	if doc.Meta == nil {
		doc.Meta = make(map[string]json.RawMessage)
	}

	if videos, ok := doc.Meta["videos"]; ok {
		if err := json.Unmarshal(videos, &doc.Videos); err != nil {
			return nil, fmt.Errorf("decode videos of %s: %w", s.CatalogPath(), err)
		}
		delete(doc.Meta, "videos")
	}

	return doc, nil
}

// Save replaces the catalog.
func (s *Store) Save(doc *Document) error {
	meta := make(map[string]any, len(doc.Meta)+1)
	for k, v := range doc.Meta {
		meta[k] = v
	}
	videos := doc.Videos
	if videos == nil {
		videos = []Video{}
	}
	meta["videos"] = videos

	return s.write(s.CatalogPath(), map[string]any{"meta": meta})
}

type streamRecord struct {
	Streams []Stream `json:"streams"`
}

// LoadStream reads the stream of a video. A missing record is None.
func (s *Store) LoadStream(id string) (mo.Option[Stream], error) {
	data, err := afero.ReadFile(s.fs, s.StreamPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return mo.None[Stream](), nil
	}
	if err != nil {
		return mo.None[Stream](), err
	}

	var record streamRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return mo.None[Stream](), fmt.Errorf("decode %s: %w", s.StreamPath(id), err)
	}

	if len(record.Streams) == 0 {
		return mo.None[Stream](), nil
	}
	return mo.Some(record.Streams[0]), nil
}

// SaveStream replaces the stream record of a video.
func (s *Store) SaveStream(id string, stream Stream) error {
	return s.write(s.StreamPath(id), streamRecord{Streams: []Stream{stream}})
}

// DeleteStream removes the stream record of a video, if any.
func (s *Store) DeleteStream(id string) error {
	return filesystem.RemoveIfExists(s.fs, s.StreamPath(id))
}

// DeleteSubtitle removes a subtitle artifact, if any.
func (s *Store) DeleteSubtitle(id string) error {
	return filesystem.RemoveIfExists(s.fs, s.SubtitlePath(id))
}

func (s *Store) write(path string, v any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return err
	}

	return filesystem.WriteAtomic(s.fs, path, buf.Bytes())
}
