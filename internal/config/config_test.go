package config_test

import (
	"testing"
	"time"

	"github.com/okian/hello/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.DocsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "hello")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "api")
			convey.So(cfg.CORSAllowedOrigins, convey.ShouldBeEmpty)
			convey.So(cfg.ReadTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.WriteTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.ShutdownTimeout(), convey.ShouldEqual, 30*time.Second)
		})

		convey.Convey("And the defaults should validate", func() {
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})
	})
}
