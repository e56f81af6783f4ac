// Package torrent resolves info hashes and torrent URIs into file listings.
//
// Resolution goes through a Cache which coalesces concurrent requests per key,
// serves previously downloaded torrents from disk and rate limits downloads.
package torrent

import (
	"bytes"
	"fmt"

	"github.com/anacrolix/torrent/metainfo"
	"github.com/samber/lo"
)

// File is one file inside a torrent.
type File struct {
	// Name is the last path element of the file.
	Name   string
	Path   []string
	Length int64
}

// Metadata is the file listing of a torrent.
type Metadata struct {
	InfoHash string
	Files    []File
}

// Parse decodes a .torrent file.
// Single-file torrents yield exactly one file named after the torrent.
func Parse(data []byte) (*Metadata, error) {
	mi, err := metainfo.Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode metainfo: %w", err)
	}

	info, err := mi.UnmarshalInfo()
	if err != nil {
		return nil, fmt.Errorf("decode info: %w", err)
	}

	meta := &Metadata{InfoHash: mi.HashInfoBytes().HexString()}

	if len(info.Files) == 0 {
		name := lo.Ternary(info.NameUtf8 != "", info.NameUtf8, info.Name)
		meta.Files = []File{{Name: name, Path: []string{name}, Length: info.Length}}
		return meta, nil
	}

	meta.Files = lo.Map(info.Files, func(fi metainfo.FileInfo, _ int) File {
		path := lo.Ternary(len(fi.PathUtf8) > 0, fi.PathUtf8, fi.Path)
		var name string
		if len(path) > 0 {
			name = path[len(path)-1]
		}
		return File{Name: name, Path: path, Length: fi.Length}
	})

	return meta, nil
}
