package qsim

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestConfig(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := NewConfig()

		So(cfg.Validate(), ShouldBeNil)
		So(cfg.Shots, ShouldEqual, 1024)
		So(cfg.Seed, ShouldEqual, uint64(0))

		Convey("Out of range values should be rejected", func() {
			for _, mutate := range []func(*Config){
				func(c *Config) { c.Shots = 0 },
				func(c *Config) { c.Workers = -1 },
				func(c *Config) { c.MaxQubits = 31 },
				func(c *Config) { c.JobTimeout = 0 },
			} {
				bad := NewConfig()
				mutate(bad)
				So(errors.Is(bad.Validate(), ErrInvalidConfig), ShouldBeTrue)
			}
		})
	})
}

func TestLoadConfig(t *testing.T) {
	Convey("Given a viper instance with a few keys set", t, func() {
		v := viper.New()
		v.Set(KeyShots, 10)
		v.Set(KeySeed, 99)
		v.Set(KeyJobTimeout, "5s")

		cfg, err := LoadConfig(v)
		So(err, ShouldBeNil)

		Convey("Set keys should win and the rest fall back to defaults", func() {
			So(cfg.Shots, ShouldEqual, 10)
			So(cfg.Seed, ShouldEqual, uint64(99))
			So(cfg.JobTimeout, ShouldEqual, 5*time.Second)
			So(cfg.Workers, ShouldEqual, NewConfig().Workers)
			So(cfg.MaxQubits, ShouldEqual, NewConfig().MaxQubits)
		})
	})

	Convey("Given a viper instance with an invalid value", t, func() {
		v := viper.New()
		v.Set(KeyWorkers, 0)

		_, err := LoadConfig(v)
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})
}
