package cmd

import (
	"testing"

	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/key"
	"github.com/au2001/onepace-stremio/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLookupField(t *testing.T) {
	Convey("Given the registered settings", t, func() {
		Convey("A known key should resolve to its field", func() {
			field, err := lookupField(key.FetchBurst)
			So(err, ShouldBeNil)
			So(field.Value, ShouldEqual, 3)
			So(field.Check(0), ShouldNotBeNil)
		})

		Convey("A misspelled key should suggest the closest one", func() {
			_, err := lookupField("fetch.brust")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.FetchBurst)
		})
	})
}

func TestEnvVars(t *testing.T) {
	Convey("Environment variables should cover every setting", t, func() {
		vars := envVars()
		So(vars, ShouldHaveLength, len(sortedFields())+1)
		So(vars[0].name, ShouldEqual, where.EnvConfigPath)
		So(vars[1].key, ShouldBeLessThan, vars[2].key)

		var found bool
		for _, v := range vars {
			if v.key == key.FetchRate {
				found = v.name == "ONEPACE_FETCH_RATE"
			}
		}
		So(found, ShouldBeTrue)
	})
}
