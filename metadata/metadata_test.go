package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/au2001/onepace-stremio/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

var (
	hashA = strings.Repeat("a", 40)
	hashB = strings.Repeat("b", 40)
)

type fakeLinker struct {
	calls []string
}

func (f *fakeLinker) Resolve(_ context.Context, link string) (source.Download, error) {
	f.calls = append(f.calls, link)
	return source.Download{Kind: source.KindTorrent, URI: "https://nyaa.si/download/1.torrent", InfoHash: hashB}, nil
}

const v2Document = `{
  "version": 2,
  "arcs": [{
    "part": 1,
    "invariant_title": "Romance Dawn",
    "translations": [{"language_code": "en", "title": "Romance Dawn", "description": "The beginning."}],
    "downloads": [{"type": 0, "uri": "magnet:?xt=urn:btih:` + "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" + `&dn=RO"}],
    "episodes": [{
      "part": 1,
      "invariant_title": "Romance Dawn, the Dawn of an Adventure",
      "released_at": "2021-01-01T00:00:00Z",
      "manga_chapters": "1",
      "anime_episodes": "1 (Intro)",
      "released": true,
      "images": [{"src": "ro_1.webp", "mimeType": "image/webp", "width": 320}],
      "downloads": [
        {"type": 1, "uri": "/torrents/` + "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb" + `.torrent"},
        {"type": 3, "uri": "https://pixeldrain.com/u/x"}
      ]
    }]
  }]
}`

func TestDecodeV2(t *testing.T) {
	Convey("Given a current document", t, func() {
		loader := NewLoader(afero.NewMemMapFs(), http.DefaultClient, nil)

		arcs, err := loader.Decode(context.Background(), []byte(v2Document))
		So(err, ShouldBeNil)
		So(arcs, ShouldHaveLength, 1)

		arc := arcs[0]
		So(arc.Part, ShouldEqual, 1)
		So(arc.Title, ShouldEqual, "Romance Dawn")
		So(arc.Translations[0].Description, ShouldEqual, "The beginning.")
		So(arc.Downloads, ShouldHaveLength, 1)
		So(arc.Downloads[0].Kind, ShouldEqual, source.KindMagnet)
		So(arc.Downloads[0].InfoHash, ShouldEqual, hashA)

		Convey("Episodes should be normalized", func() {
			episode := arc.Episodes[0]
			So(episode.InvariantTitle, ShouldStartWith, "Romance Dawn")
			So(episode.AnimeEpisodes, ShouldEqual, "1 (Intro)")
			So(episode.ReleaseStatus.MustGet(), ShouldBeTrue)
			So(episode.Images[0].MimeType, ShouldEqual, "image/webp")

			So(episode.Downloads, ShouldHaveLength, 2)
			So(episode.Downloads[0].Kind, ShouldEqual, source.KindTorrent)
			So(episode.Downloads[0].InfoHash, ShouldEqual, hashB)
			So(episode.Downloads[1].Kind, ShouldEqual, source.KindOther)
			So(episode.Downloads[1].HasInfoHash(), ShouldBeFalse)
		})
	})

	Convey("A torrent download without an info hash should fail", t, func() {
		doc := `{"version": 2, "arcs": [{"part": 1, "invariant_title": "X", "episodes": [],
			"downloads": [{"type": 1, "uri": "/torrents/latest.torrent"}]}]}`

		_, err := NewLoader(afero.NewMemMapFs(), http.DefaultClient, nil).Decode(context.Background(), []byte(doc))

		var uriErr *URIError
		So(errors.As(err, &uriErr), ShouldBeTrue)
		So(uriErr.Kind, ShouldEqual, source.KindTorrent)
		So(uriErr.URI, ShouldEqual, "/torrents/latest.torrent")
	})

	Convey("A magnet with trailing garbage in the hash should fail", t, func() {
		_, err := hashed(source.KindMagnet, "magnet:?xt=urn:btih:"+hashA+"ff")
		So(err, ShouldNotBeNil)

		download, err := hashed(source.KindMagnet, "magnet:?xt=urn:btih:"+hashA)
		So(err, ShouldBeNil)
		So(download.InfoHash, ShouldEqual, hashA)
	})
}

func TestDecodeV1(t *testing.T) {
	Convey("Given a legacy document with a nyaa download", t, func() {
		linker := &fakeLinker{}
		loader := NewLoader(afero.NewMemMapFs(), http.DefaultClient, linker)

		doc := `{"version": 1, "arcs": [{"number": 2, "title": "Orange Town", "episodes": [
			{"number": 1, "title": "The Great Pirate", "releaseDate": "2020-05-04", "animeEpisodes": "4-5",
			 "downloads": [{"type": "nyaa", "uri": "https://nyaa.si/view/1"}, {"type": "direct", "uri": "https://example.com/a.mkv"}]}
		]}]}`

		arcs, err := loader.Decode(context.Background(), []byte(doc))
		So(err, ShouldBeNil)
		So(linker.calls, ShouldResemble, []string{"https://nyaa.si/view/1"})

		episode := arcs[0].Episodes[0]
		So(arcs[0].Part, ShouldEqual, 2)
		So(episode.ReleasedAt, ShouldEqual, "2020-05-04T00:00:00Z")
		So(episode.ReleaseStatus.IsPresent(), ShouldBeFalse)
		So(episode.Downloads[0].InfoHash, ShouldEqual, hashB)
		So(episode.Downloads[1].Kind, ShouldEqual, source.KindDirect)
	})

	Convey("An unknown download type should fail", t, func() {
		doc := `{"version": 1, "arcs": [{"number": 1, "title": "X", "episodes": [{"number": 1, "title": "Y", "downloads": [{"type": "ftp", "uri": "x"}]}]}]}`
		_, err := NewLoader(afero.NewMemMapFs(), http.DefaultClient, nil).Decode(context.Background(), []byte(doc))
		So(err, ShouldNotBeNil)
	})
}

func TestLoad(t *testing.T) {
	Convey("An unknown version should fail", t, func() {
		_, err := NewLoader(afero.NewMemMapFs(), http.DefaultClient, nil).Decode(context.Background(), []byte(`{"arcs": []}`))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "version 0")
	})

	Convey("A local document should be read from the filesystem", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "/data/arcs.json", []byte(v2Document), 0o644), ShouldBeNil)

		arcs, err := NewLoader(fs, http.DefaultClient, nil).Load(context.Background(), "/data/arcs.json")
		So(err, ShouldBeNil)
		So(arcs, ShouldHaveLength, 1)

		_, err = NewLoader(fs, http.DefaultClient, nil).Load(context.Background(), "/data/missing.json")
		So(err, ShouldNotBeNil)
	})

	Convey("A remote document should be downloaded", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/arcs.json" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(v2Document))
		}))
		defer server.Close()

		loader := NewLoader(afero.NewMemMapFs(), server.Client(), nil)

		arcs, err := loader.Load(context.Background(), server.URL+"/arcs.json")
		So(err, ShouldBeNil)
		So(arcs, ShouldHaveLength, 1)

		_, err = loader.Load(context.Background(), server.URL+"/missing.json")
		So(err, ShouldNotBeNil)
	})
}
