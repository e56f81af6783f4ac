// Package source defines the canonical arc, episode and download records every metadata adapter normalizes into.
package source

// Arc is a story arc. Its part number becomes the catalog season.
type Arc struct {
	ID string `json:"id"`
	// Part is the ordinal of the arc, starting at 1.
	Part int `json:"part"`
	// Title is the invariant (untranslated) title, used for prefixes and subtitle lookup.
	Title        string        `json:"title"`
	Translations []Translation `json:"translations,omitempty"`
	Episodes     []*Episode    `json:"episodes"`
	// Downloads covering the whole arc, usually a batch torrent.
	Downloads []Download `json:"downloads,omitempty"`
}

// String returns the arc title.
func (a *Arc) String() string {
	return a.Title
}

// Translation is a localized title and description.
type Translation struct {
	Language    string `json:"language"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Image is an episode artwork.
type Image struct {
	Src      string `json:"src"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width,omitempty"`
}
