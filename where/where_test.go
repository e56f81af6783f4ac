package where

import (
	"path/filepath"
	"testing"

	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Torrents() should live inside the cache", func() {
			path := Torrents()
			So(filepath.Dir(path), ShouldEqual, Cache())
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Output() should follow the config", func() {
			viper.Set(key.CatalogOutput, "/srv/addon")
			defer viper.Set(key.CatalogOutput, "")

			So(Output(), ShouldEqual, "/srv/addon")
			So(lo.Must(filesystem.API().IsDir("/srv/addon")), ShouldBeTrue)
		})
	})
}
