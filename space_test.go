package qsim

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSpace(t *testing.T) {
	Convey("Given a result space", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		space := NewSpace(time.Minute)

		Reset(func() {
			space.Close()
		})

		Convey("When a value is stored before anyone waits", func() {
			space.Store("task-1", "done", nil, time.Minute)

			Convey("Await should return it immediately", func() {
				select {
				case <-ctx.Done():
					t.Fatal("timed out waiting for stored value")
				case v := <-space.Await("task-1"):
					So(v.Value, ShouldEqual, "done")
					So(v.Error, ShouldBeNil)
				}
			})
		})

		Convey("When several callers wait before the value arrives", func() {
			first := space.Await("task-2")
			second := space.Await("task-2")

			boom := errors.New("boom")
			space.Store("task-2", nil, boom, time.Minute)

			Convey("Every waiter should be woken with the same outcome", func() {
				for _, ch := range []chan Value{first, second} {
					select {
					case <-ctx.Done():
						t.Fatal("timed out waiting for waiter")
					case v := <-ch:
						So(v.Error, ShouldEqual, boom)
					}
				}
			})
		})

		Convey("When values outlive their TTL", func() {
			space.Store("short", 1, nil, time.Millisecond)
			space.Store("long", 2, nil, time.Hour)
			space.Store("forever", 3, nil, 0)

			space.Expire(time.Now().Add(time.Minute))

			Convey("Only expired values should be dropped", func() {
				So(space.Len(), ShouldEqual, 2)
			})
		})
	})
}
