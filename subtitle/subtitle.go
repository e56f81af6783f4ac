// Package subtitle finds .ass subtitle releases for episodes and converts them to .srt.
package subtitle

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/source"
	"github.com/spf13/afero"
)

// DefaultLanguage is assumed for files without a language suffix.
const DefaultLanguage = "English"

// Languages maps release language names to ISO 639-2 codes.
var Languages = map[string]string{
	"Alternate": "eng",
	"Arabic":    "ara",
	"Deutsch":   "ger",
	"English":   "eng",
	"Extended":  "eng",
	"French":    "fre",
	"Italian":   "ita",
	"Japanese":  "jpn",
	"Polish":    "pol",
	"Portugues": "por",
	"Spanish":   "spa",
	"Turkish":   "tur",
}

var languagePattern = regexp.MustCompile(`\] ([^\[\]]+?)(?: Extended)?\.ass$`)

// LanguageError reports a subtitle file in an unknown language.
type LanguageError struct {
	Name string
	File string
}

func (e *LanguageError) Error() string {
	return fmt.Sprintf("unknown subtitle language %s in %s", e.Name, e.File)
}

// Language returns the ISO 639-2 code of a subtitle file name.
func Language(file string) (string, error) {
	name := DefaultLanguage
	if m := languagePattern.FindStringSubmatch(file); m != nil {
		name = m[1]
	}

	code, ok := Languages[name]
	if !ok {
		return "", &LanguageError{Name: name, File: file}
	}
	return code, nil
}

// Finder lists a release directory once and looks episodes up in it.
type Finder struct {
	fs  afero.Fs
	dir string

	once  sync.Once
	files []string
	err   error
}

// NewFinder returns a finder over dir.
func NewFinder(fsys afero.Fs, dir string) *Finder {
	return &Finder{fs: fsys, dir: dir}
}

func (f *Finder) list() ([]string, error) {
	f.once.Do(func() {
		entries, err := afero.ReadDir(f.fs, f.dir)
		if err != nil {
			f.err = fmt.Errorf("list subtitles: %w", err)
			return
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".ass") {
				f.files = append(f.files, entry.Name())
			}
		}
	})
	return f.files, f.err
}

// Job converts one release file into a published subtitle.
type Job struct {
	Input  string
	Output string
}

// Builder derives the subtitles of videos and the conversions producing them.
type Builder struct {
	finder    *Finder
	publicURL string
	output    func(id string) string
}

// NewBuilder returns a builder. output maps a subtitle id to the file it is written to.
func NewBuilder(finder *Finder, publicURL string, output func(id string) string) *Builder {
	return &Builder{finder: finder, publicURL: publicURL, output: output}
}

// For returns the subtitles of a video and the jobs writing them.
// Only the first file of each language is used.
func (b *Builder) For(arc *source.Arc, video catalog.Video) ([]catalog.Subtitle, []Job, error) {
	files, err := b.finder.list()
	if err != nil {
		return nil, nil, err
	}

	filter := fmt.Sprintf(" %s %02d ", arc.Title, video.Episode)

	var (
		subtitles []catalog.Subtitle
		jobs      []Job
		seen      = make(map[string]struct{})
	)

	for _, file := range files {
		if !strings.Contains(file, filter) {
			continue
		}

		lang, err := Language(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", video.ID, err)
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}

		id := video.ID + "_" + lang
		link, err := url.JoinPath(b.publicURL, "static", id+".srt")
		if err != nil {
			return nil, nil, err
		}

		subtitles = append(subtitles, catalog.Subtitle{ID: id, URL: link, Lang: lang})
		jobs = append(jobs, Job{
			Input:  filepath.Join(b.finder.dir, file),
			Output: b.output(id),
		})
	}

	return subtitles, jobs, nil
}
