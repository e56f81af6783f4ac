package episoderange

import (
	"errors"
	"fmt"
	"testing"

	"github.com/au2001/onepace-stremio/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given a parser with the default specials", t, func() {
		parser := NewParser(constant.Specials)

		Convey("A bare number should be a single episode", func() {
			set, err := parser.Parse("5")
			So(err, ShouldBeNil)
			So(set.Sorted(), ShouldResemble, []int{5})
		})

		Convey("An intro suffix should be ignored", func() {
			set, err := parser.Parse("12 (Intro)")
			So(err, ShouldBeNil)
			So(set.Sorted(), ShouldResemble, []int{12})
		})

		Convey("A span should be inclusive", func() {
			set, err := parser.Parse("5-7")
			So(err, ShouldBeNil)
			So(set.Sorted(), ShouldResemble, []int{5, 6, 7})
		})

		Convey("Tokens should be comma separated and trimmed", func() {
			set, err := parser.Parse("5, 7-8")
			So(err, ShouldBeNil)
			So(set.Sorted(), ShouldResemble, []int{5, 7, 8})
		})

		Convey("A special should cover nothing", func() {
			set, err := parser.Parse("Episode of Nami")
			So(err, ShouldBeNil)
			So(set, ShouldBeEmpty)
		})

		Convey("A movie label should cover nothing", func() {
			set, err := parser.Parse("Strong World (movie 10)")
			So(err, ShouldBeNil)
			So(set, ShouldBeEmpty)
		})

		Convey("An empty label should cover nothing", func() {
			set, err := parser.Parse("")
			So(err, ShouldBeNil)
			So(set, ShouldBeEmpty)
		})

		Convey("Unknown tokens should fail", func() {
			for _, spec := range []string{"banana", "0", "7-5", "5,", "Episode of Zoro", "05"} {
				_, err := parser.Parse(spec)
				var parseErr *ParseError
				So(errors.As(err, &parseErr), ShouldBeTrue)
			}
		})

		Convey("Spans wider than the limit should fail", func() {
			_, err := parser.Parse("1-2000000000")
			var parseErr *ParseError
			So(errors.As(err, &parseErr), ShouldBeTrue)
			So(parseErr.Token, ShouldEqual, "1-2000000000")

			set, err := parser.Parse(fmt.Sprintf("1-%d", MaxSpan))
			So(err, ShouldBeNil)
			So(set, ShouldHaveLength, MaxSpan)
		})
	})

	Convey("Given a parser without specials", t, func() {
		parser := NewParser(nil)

		Convey("Specials should be rejected", func() {
			_, err := parser.Parse("Episode of Nami")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSet(t *testing.T) {
	Convey("Given a covered set", t, func() {
		covered := Set{1: {}, 2: {}, 3: {}}

		So(covered.Covers(Set{1: {}, 3: {}}), ShouldBeTrue)
		So(covered.Covers(Set{3: {}, 4: {}}), ShouldBeFalse)
		So(covered.Covers(Set{}), ShouldBeTrue)

		covered.Add(Set{4: {}})
		So(covered.Has(4), ShouldBeTrue)
	})
}
