package torrent

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/spf13/afero"
)

// Store keeps raw torrent files on disk, one file per key.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(fsys afero.Fs, dir string) *Store {
	return &Store{fs: fsys, dir: dir}
}

// Path returns the file backing key.
// Info hashes are used verbatim, URIs are hashed.
func (s *Store) Path(key string) string {
	if IsURI(key) {
		sum := sha256.Sum256([]byte(key))
		return filepath.Join(s.dir, "uri-"+hex.EncodeToString(sum[:])+".torrent")
	}
	return filepath.Join(s.dir, key+".torrent")
}

// Load returns the stored bytes for key. A missing file is reported with ok set to false and no error.
func (s *Store) Load(key string) (data []byte, ok bool, err error) {
	data, err = afero.ReadFile(s.fs, s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save stores data for key.
func (s *Store) Save(key string, data []byte) error {
	return filesystem.WriteAtomic(s.fs, s.Path(key), data)
}

// Remove deletes the stored file for key, if any.
func (s *Store) Remove(key string) error {
	return filesystem.RemoveIfExists(s.fs, s.Path(key))
}
