package torrent

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given a multi-file torrent", t, func() {
		data := buildTorrent("[One Pace] Romance Dawn", "[One Pace][1] Romance Dawn 01 [1080p].mkv", "[One Pace][2-3] Romance Dawn 02 [1080p].mkv")

		Convey("Parse should list files in order", func() {
			meta, err := Parse(data)
			So(err, ShouldBeNil)
			So(meta.InfoHash, ShouldHaveLength, 40)
			So(meta.Files, ShouldHaveLength, 2)
			So(meta.Files[0].Name, ShouldEqual, "[One Pace][1] Romance Dawn 01 [1080p].mkv")
			So(meta.Files[1].Length, ShouldEqual, 1024)
		})
	})

	Convey("Given a single-file torrent", t, func() {
		data := buildTorrent("[One Pace][1] Romance Dawn 01 [1080p].mkv")

		Convey("Parse should yield one file named after the torrent", func() {
			meta, err := Parse(data)
			So(err, ShouldBeNil)
			So(meta.Files, ShouldHaveLength, 1)
			So(meta.Files[0].Name, ShouldEqual, "[One Pace][1] Romance Dawn 01 [1080p].mkv")
		})
	})

	Convey("Given garbage", t, func() {
		_, err := Parse([]byte("<html>not found</html>"))
		So(err, ShouldNotBeNil)
	})
}
