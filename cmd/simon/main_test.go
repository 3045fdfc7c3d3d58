package main

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given a three bit secret", t, func() {
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"--s", "101", "--shots", "512", "--seed", "9"}, &stdout, &stderr)

		So(err, ShouldBeNil)
		So(stdout.String(), ShouldContainSubstring, "Outcomes with probability:")
		So(stdout.String(), ShouldEndWith, "s = 101\n")
	})

	Convey("Given a malformed secret", t, func() {
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"--s", "12"}, &stdout, &stderr)

		So(err, ShouldNotBeNil)
		So(stdout.Len(), ShouldEqual, 0)
	})
}
