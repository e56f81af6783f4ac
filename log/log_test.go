package log

import (
	"testing"

	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/key"
	"github.com/au2001/onepace-stremio/where"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given the log configuration", t, func() {
		Convey("An unknown level should fall back to info", func() {
			viper.Set(key.LogsLevel, "chatty")
			So(Setup(), ShouldBeNil)
			So(logrus.GetLevel(), ShouldEqual, logrus.InfoLevel)
		})

		Convey("Writing logs should create the daily file", func() {
			viper.Set(key.LogsWrite, true)
			defer viper.Set(key.LogsWrite, false)

			So(Setup(), ShouldBeNil)
			Info("hello")

			files := lo.Must(filesystem.API().ReadDir(where.Logs()))
			So(files, ShouldHaveLength, 1)
			So(files[0].Name(), ShouldEndWith, ".log")
		})
	})
}

func TestWithFields(t *testing.T) {
	Convey("Given a test hook", t, func() {
		hook := test.NewGlobal()
		defer hook.Reset()

		Convey("Fields should reach the entry", func() {
			WithFields(Fields{"id": "RO_1", "kind": "added"}).Warn("RO_1 added")

			entry := hook.LastEntry()
			So(entry, ShouldNotBeNil)
			So(entry.Level, ShouldEqual, logrus.WarnLevel)
			So(entry.Data["id"], ShouldEqual, "RO_1")
			So(entry.Message, ShouldEqual, "RO_1 added")
		})
	})
}
