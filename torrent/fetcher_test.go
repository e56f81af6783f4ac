package torrent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/au2001/onepace-stremio/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPFetcher(t *testing.T) {
	Convey("Given a torrent server", t, func() {
		body := buildTorrent("a.mkv")
		var agent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.UserAgent()
			if r.URL.Path != "/torrents/"+hashA+".torrent" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write(body)
		}))
		defer server.Close()

		fetcher := &HTTPFetcher{Client: server.Client(), Endpoint: server.URL + "/torrents/%s.torrent"}

		Convey("Info hashes should go through the endpoint", func() {
			data, err := fetcher.Fetch(context.Background(), hashA)
			So(err, ShouldBeNil)
			So(data, ShouldResemble, body)
			So(agent, ShouldEqual, constant.UserAgent)
		})

		Convey("URIs should be fetched as is", func() {
			So(fetcher.URL("https://nyaa.si/download/1.torrent"), ShouldEqual, "https://nyaa.si/download/1.torrent")

			data, err := fetcher.Fetch(context.Background(), server.URL+"/torrents/"+hashA+".torrent")
			So(err, ShouldBeNil)
			So(data, ShouldResemble, body)
		})

		Convey("A non-200 status should fail", func() {
			_, err := fetcher.Fetch(context.Background(), hashB)
			So(err, ShouldNotBeNil)
		})
	})
}
