package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestStore(t *testing.T) {
	Convey("Given an empty output directory", t, func() {
		fs := afero.NewMemMapFs()
		store := NewStore(fs, "/out", "onepace")

		Convey("Paths should follow the addon layout", func() {
			So(store.CatalogPath(), ShouldEqual, "/out/meta/series/onepace.json")
			So(store.StreamPath("RO_1"), ShouldEqual, "/out/stream/series/RO_1.json")
			So(store.SubtitlePath("RO_1_eng"), ShouldEqual, "/out/static/RO_1_eng.srt")
		})

		Convey("A missing catalog should load as empty", func() {
			doc, err := store.Load()
			So(err, ShouldBeNil)
			So(doc.Videos, ShouldBeEmpty)
		})

		Convey("A missing stream should load as none", func() {
			stream, err := store.LoadStream("RO_1")
			So(err, ShouldBeNil)
			So(stream.IsAbsent(), ShouldBeTrue)
		})

		Convey("Deleting missing artifacts should succeed", func() {
			So(store.DeleteStream("RO_1"), ShouldBeNil)
			So(store.DeleteSubtitle("RO_1_eng"), ShouldBeNil)
		})

		Convey("A saved stream should load back", func() {
			stream := Stream{
				InfoHash:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				FileIdx:   Index(0),
				Subtitles: []Subtitle{{ID: "RO_1_eng", URL: "https://onepace.arl.sh/static/RO_1_eng.srt", Lang: "eng"}},
			}
			So(store.SaveStream("RO_1", stream), ShouldBeNil)

			loaded, err := store.LoadStream("RO_1")
			So(err, ShouldBeNil)
			So(cmp.Diff(stream, loaded.MustGet()), ShouldBeEmpty)

			data := string(lo.Must(afero.ReadFile(fs, store.StreamPath("RO_1"))))
			So(data, ShouldStartWith, "{\n  \"streams\": [\n")
			So(data, ShouldContainSubstring, `"fileIdx": 0`)
		})

		Convey("A stream without file index should omit it", func() {
			So(store.SaveStream("RO_2", Stream{InfoHash: "b"}), ShouldBeNil)
			data := string(lo.Must(afero.ReadFile(fs, store.StreamPath("RO_2"))))
			So(data, ShouldNotContainSubstring, "fileIdx")
			So(data, ShouldNotContainSubstring, "subtitles")
		})
	})

	Convey("Given a catalog with extra meta fields", t, func() {
		fs := afero.NewMemMapFs()
		store := NewStore(fs, "/out", "onepace")
		So(afero.WriteFile(fs, store.CatalogPath(), []byte(`{
  "meta": {
    "id": "onepace",
    "type": "series",
    "name": "One Pace",
    "videos": [
      {"season": 1, "episode": 1, "id": "RO_1", "title": "Romance Dawn", "released": "2020-01-01T00:00:00.000Z"}
    ]
  }
}`), 0o644), ShouldBeNil)

		Convey("Load should split videos from the rest", func() {
			doc, err := store.Load()
			So(err, ShouldBeNil)
			So(doc.Videos, ShouldHaveLength, 1)
			So(doc.Videos[0].Title, ShouldEqual, "Romance Dawn")
			So(doc.Meta, ShouldContainKey, "name")
			So(doc.Meta, ShouldNotContainKey, "videos")

			Convey("and Save should keep the extra fields", func() {
				doc.Videos = append(doc.Videos, Video{Season: 1, Episode: 2, ID: "RO_2", Title: "Unreleased"})
				So(store.Save(doc), ShouldBeNil)

				again, err := store.Load()
				So(err, ShouldBeNil)
				So(string(again.Meta["name"]), ShouldEqual, `"One Pace"`)
				So(again.Videos, ShouldHaveLength, 2)
				So(cmp.Diff(doc.Videos, again.Videos), ShouldBeEmpty)
			})
		})
	})
}

func TestStream(t *testing.T) {
	Convey("Given streams", t, func() {
		a := Stream{InfoHash: "a", FileIdx: Index(1)}

		So(a.String(), ShouldEqual, "a:1")
		So(Stream{InfoHash: "a"}.String(), ShouldEqual, "a")

		So(a.SameTarget(Stream{InfoHash: "a", FileIdx: Index(1)}), ShouldBeTrue)
		So(a.SameTarget(Stream{InfoHash: "a", FileIdx: Index(2)}), ShouldBeFalse)
		So(a.SameTarget(Stream{InfoHash: "a"}), ShouldBeFalse)
		So(a.SameTarget(Stream{InfoHash: "b", FileIdx: Index(1)}), ShouldBeFalse)
		So(Stream{InfoHash: "a"}.SameTarget(Stream{InfoHash: "a"}), ShouldBeTrue)
	})
}

func TestSort(t *testing.T) {
	Convey("Sort should order by season then episode", t, func() {
		videos := []Video{
			{Season: 2, Episode: 1, ID: "OR_1"},
			{Season: 1, Episode: 3, ID: "RO_3"},
			{Season: 1, Episode: 1, ID: "RO_1"},
		}
		Sort(videos)
		So(lo.Map(videos, func(v Video, _ int) string { return v.ID }), ShouldResemble, []string{"RO_1", "RO_3", "OR_1"})
	})
}
