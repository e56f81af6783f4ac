package kai

import (
	"strconv"
	"strings"
	"testing"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/constant"
	"github.com/au2001/onepace-stremio/episoderange"
	"github.com/au2001/onepace-stremio/reconcile"
	"github.com/au2001/onepace-stremio/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

var kaiHash = strings.Repeat("k", 40)

func prefixID(arc *source.Arc, episode int) (string, error) {
	return strings.ToUpper(arc.Title[:2]) + "_" + strconv.Itoa(episode), nil
}

func TestFill(t *testing.T) {
	Convey("Given a catalog covering anime episodes 1 to 3", t, func() {
		arcs := []*source.Arc{{Part: 1, Title: "Romance Dawn"}, {Part: 2, Title: "Orange Town"}}
		entries := []reconcile.Entry{
			{Video: catalog.Video{Season: 1, Episode: 1, ID: "RO_1"}},
			{Video: catalog.Video{Season: 1, Episode: 2, ID: "RO_2"}},
		}
		covered := episoderange.Set{1: {}, 2: {}, 3: {}}
		filler := NewFiller(episoderange.NewParser(constant.Specials), prefixID)

		doc := &Document{
			InfoHash: kaiHash,
			Episodes: []Episode{
				{Arc: "Romance Dawn", Title: "Kai 1", AnimeEpisodes: "1-3"},
				{Arc: "Romance Dawn", Title: "Kai 2", AnimeEpisodes: "3-4", Released: "2022-01-01T00:00:00.000Z"},
				{Arc: "Romance Dawn", Title: "Kai 3", AnimeEpisodes: "5"},
				{Arc: "Orange Town", Title: "Kai 4", AnimeEpisodes: "Episode of Nami"},
				{Arc: "Orange Town", Title: "Kai 5", AnimeEpisodes: "9"},
			},
		}

		Convey("Only uncovered episodes should be added, numbered after their season", func() {
			filled, err := filler.Fill(doc, arcs, entries, covered)
			So(err, ShouldBeNil)
			So(lo.Map(filled, func(e reconcile.Entry, _ int) string { return e.Video.ID }), ShouldResemble, []string{"RO_3", "RO_4", "OR_1"})

			So(filled[0].Video.Title, ShouldEqual, "Kai 2")
			So(filled[0].Video.Released, ShouldEqual, "2022-01-01T00:00:00.000Z")
			So(filled[0].Stream.MustGet().InfoHash, ShouldEqual, kaiHash)
			So(*filled[0].Stream.MustGet().FileIdx, ShouldEqual, 1)
			So(*filled[2].Stream.MustGet().FileIdx, ShouldEqual, 4)
			So(filled[2].Video.Season, ShouldEqual, 2)
		})

		Convey("An unknown arc should fail", func() {
			doc.Episodes = append(doc.Episodes, Episode{Arc: "Atlantis", AnimeEpisodes: "999"})
			_, err := filler.Fill(doc, arcs, entries, covered)
			So(err, ShouldNotBeNil)
		})

		Convey("A broken range should fail", func() {
			doc.Episodes[0].AnimeEpisodes = "banana"
			_, err := filler.Fill(doc, arcs, entries, covered)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Load should decode the document", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "/kai.json", []byte(`{"infoHash":"`+kaiHash+`","episodes":[{"arc":"Romance Dawn","title":"Kai 1","anime_episodes":"1-3"}]}`), 0o644), ShouldBeNil)

		doc, err := Load(fs, "/kai.json")
		So(err, ShouldBeNil)
		So(doc.InfoHash, ShouldEqual, kaiHash)
		So(doc.Episodes[0].AnimeEpisodes, ShouldEqual, "1-3")
	})
}
