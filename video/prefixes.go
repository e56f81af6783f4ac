package video

import (
	"encoding/json"
	"fmt"

	"github.com/au2001/onepace-stremio/constant"
	"github.com/spf13/afero"
)

// LoadPrefixes reads an arc title to prefix table from path,
// or returns the built-in table when path is empty.
func LoadPrefixes(fsys afero.Fs, path string) (map[string]string, error) {
	data := constant.ArcPrefixes
	if path != "" {
		var err error
		if data, err = afero.ReadFile(fsys, path); err != nil {
			return nil, err
		}
	}

	var prefixes map[string]string
	if err := json.Unmarshal(data, &prefixes); err != nil {
		return nil, fmt.Errorf("decode arc prefixes: %w", err)
	}

	seen := make(map[string]string, len(prefixes))
	for title, prefix := range prefixes {
		if other, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("arcs %q and %q share the prefix %s", other, title, prefix)
		}
		seen[prefix] = title
	}

	return prefixes, nil
}
