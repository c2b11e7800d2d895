package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/hello/internal/app"
	"github.com/okian/hello/internal/config"
	"github.com/okian/hello/pkg/logger"
	"github.com/okian/hello/pkg/metrics"
)

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		h := newHandler(ctx, cfg, service.New(), logger.Nop())

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then business routes are served", func() {
			convey.So(get("/").Body.String(), convey.ShouldEqual, service.Greeting)
			convey.So(get("/health").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And docs and metrics are exposed", func() {
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/metrics").Code, convey.ShouldEqual, http.StatusOK)
		})
	})

	convey.Convey("Given docs and metrics disabled", t, func() {
		cfg := config.New()
		cfg.DocsEnabled = false
		cfg.MetricsEnabled = false
		h := newHandler(context.Background(), cfg, service.New(), logger.Nop())

		convey.Convey("Then those routes are not found", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/metrics"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
				convey.So(w.Body.String(), convey.ShouldEqual, `{"error":"Route not found"}`)
			}
		})
	})
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given a configuration loaded from the environment", t, func() {
		_ = os.Setenv("HELLO_ADDR", ":8081")
		_ = os.Setenv("HELLO_READ_TIMEOUT_MS", "1500")
		defer func() {
			_ = os.Unsetenv("HELLO_ADDR")
			_ = os.Unsetenv("HELLO_READ_TIMEOUT_MS")
		}()

		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When building the HTTP server", func() {
			srv := newHTTPServer(cfg, http.NotFoundHandler())

			convey.Convey("Then it carries the configured address and timeouts", func() {
				convey.So(srv.Addr, convey.ShouldEqual, ":8081")
				convey.So(srv.ReadTimeout, convey.ShouldEqual, 1500*time.Millisecond)
				convey.So(srv.WriteTimeout, convey.ShouldEqual, cfg.WriteTimeout())
				convey.So(srv.IdleTimeout, convey.ShouldEqual, idleTimeout)
				convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			})
		})
	})
}

func TestConfigureMetrics(t *testing.T) {
	convey.Convey("Given a configured metrics namespace", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "edge"
		cfg.MetricsSubsystem = "greeter"

		convey.Convey("When metrics are configured and a request is served", func() {
			configureMetrics(cfg)
			defer configureMetrics(config.New())

			h := newHandler(context.Background(), cfg, service.New(), logger.Nop())
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

			convey.Convey("Then /metrics exposes the configured names", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "edge_greeter_health_checks_total 1")
				convey.So(w.Body.String(), convey.ShouldNotContainSubstring, "hello_api_")
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When updating once", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)

			convey.Convey("Then the gauges are exported", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)

				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				convey.So(names, convey.ShouldContain, "hello_api_system_goroutine_count")
			})
		})

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()
			cancel()

			convey.Convey("Then the updater returns", func() {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("updater did not stop")
				}
			})
		})
	})
}
